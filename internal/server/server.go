// Package server provides the HTTP status surface: health, palette,
// recording catalog and a live detection feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ayusman/colorwatch/internal/server/api"
	"github.com/ayusman/colorwatch/internal/store"
)

// Config holds the server configuration.
type Config struct {
	// MediaDir, when set, is served read-only under /media/ so recordings can be downloaded.
	MediaDir string
	Store    *store.Store
	Hub      *Hub
}

// Server represents the HTTP server for the detector.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	http   *http.Server
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.http = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	colors := api.NewColorsHandler()
	s.mux.Handle("/api/colors", colors)
	s.mux.Handle("/api/colors/", colors)

	// Register recording catalog if Store is configured
	if s.config.Store != nil {
		recordings := api.NewRecordingHandler(s.config.Store)
		s.mux.Handle("/api/recordings", recordings)
		s.mux.Handle("/api/recordings/", recordings)
	}

	if s.config.Hub != nil {
		s.mux.Handle("/api/detections", s.config.Hub)
	}

	if s.config.MediaDir != "" {
		fs := http.FileServer(http.Dir(s.config.MediaDir))
		s.mux.Handle("/media/", http.StripPrefix("/media/", fs))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.Hub != nil {
		response["clients"] = s.config.Hub.Clients()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until it stops. A clean Shutdown returns nil.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Str("addr", ln.Addr().String()).Msg("status server listening")
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server and disconnects detection clients.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.config.Hub != nil {
		s.config.Hub.Close()
	}
	return s.http.Shutdown(ctx)
}
