package api

import (
	"net/http"
	"strings"

	"github.com/ayusman/colorwatch/internal/palette"
)

// ColorsHandler serves the fixed palette. It needs no store.
type ColorsHandler struct{}

// NewColorsHandler creates a new ColorsHandler.
func NewColorsHandler() *ColorsHandler {
	return &ColorsHandler{}
}

type colorResponse struct {
	Name  string      `json:"name"`
	Lower palette.HSV `json:"lower"`
	Upper palette.HSV `json:"upper"`
	// Swatch is a "#rrggbb" preview of the box center.
	Swatch string `json:"swatch"`
}

type listColorsResponse struct {
	Colors []colorResponse `json:"colors"`
}

// ServeHTTP handles GET /api/colors and GET /api/colors/{name}.
func (h *ColorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/colors")
	name = strings.TrimPrefix(name, "/")

	if name == "" {
		h.list(w)
		return
	}
	h.get(w, name)
}

func (h *ColorsHandler) list(w http.ResponseWriter) {
	names := palette.Names()
	response := listColorsResponse{Colors: make([]colorResponse, 0, len(names))}
	for _, name := range names {
		b, err := palette.ResolveNamed(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		response.Colors = append(response.Colors, colorResponse{
			Name:   name,
			Lower:  b.Lower,
			Upper:  b.Upper,
			Swatch: b.Swatch(),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ColorsHandler) get(w http.ResponseWriter, name string) {
	b, err := palette.ResolveNamed(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, colorResponse{
		Name:   strings.ToLower(name),
		Lower:  b.Lower,
		Upper:  b.Upper,
		Swatch: b.Swatch(),
	})
}
