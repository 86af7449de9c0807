package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ayusman/colorwatch/internal/store"
)

// RecordingHandler handles HTTP requests for the recording catalog.
type RecordingHandler struct {
	store *store.Store
}

// NewRecordingHandler creates a new RecordingHandler with the given store.
func NewRecordingHandler(s *store.Store) *RecordingHandler {
	return &RecordingHandler{store: s}
}

// ServeHTTP routes /api/recordings and /api/recordings/{id}.
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recordings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodDelete:
		h.delete(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type recordingResponse struct {
	ID        string  `json:"id"`
	Color     string  `json:"color"`
	Path      string  `json:"path"`
	Backend   string  `json:"backend"`
	FPS       float64 `json:"fps"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Frames    int     `json:"frames"`
	StartedAt string  `json:"started_at"`
	EndedAt   string  `json:"ended_at,omitempty"`
}

type listRecordingsResponse struct {
	Recordings []recordingResponse `json:"recordings"`
}

func toResponse(rec *store.Recording) recordingResponse {
	resp := recordingResponse{
		ID:        rec.ID,
		Color:     rec.Color,
		Path:      rec.Path,
		Backend:   rec.Backend,
		FPS:       rec.FPS,
		Width:     rec.Width,
		Height:    rec.Height,
		Frames:    rec.Frames,
		StartedAt: rec.StartedAt.Format(time.RFC3339),
	}
	if rec.EndedAt != nil {
		resp.EndedAt = rec.EndedAt.Format(time.RFC3339)
	}
	return resp
}

// list handles GET /api/recordings[?color=name].
func (h *RecordingHandler) list(w http.ResponseWriter, r *http.Request) {
	recordings, err := h.store.Recordings().List(r.URL.Query().Get("color"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list recordings")
		writeError(w, http.StatusInternalServerError, "failed to list recordings")
		return
	}

	response := listRecordingsResponse{Recordings: make([]recordingResponse, 0, len(recordings))}
	for _, rec := range recordings {
		response.Recordings = append(response.Recordings, toResponse(rec))
	}
	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/recordings/{id}.
func (h *RecordingHandler) get(w http.ResponseWriter, id string) {
	rec, err := h.store.Recordings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to get recording")
		writeError(w, http.StatusInternalServerError, "failed to get recording")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

// delete handles DELETE /api/recordings/{id}. Only the catalog row goes away.
func (h *RecordingHandler) delete(w http.ResponseWriter, id string) {
	if err := h.store.Recordings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to delete recording")
		writeError(w, http.StatusInternalServerError, "failed to delete recording")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
