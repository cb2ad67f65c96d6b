// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

type vibeResponse struct {
	MovieID int64     `json:"movie_id"`
	Vibe    []float64 `json:"vibe_vector"`
}

// VibeHandler serves stored vibe vectors.
type VibeHandler struct {
	deps Dependencies
}

// NewVibeHandler creates a new vibe handler.
func NewVibeHandler(deps Dependencies) *VibeHandler {
	return &VibeHandler{deps: deps}
}

// HandleGetVibe handles GET /movies/{id}/vibe requests. A movie that was
// never ingested is a 404, the defined "not yet ingested" condition.
func (h *VibeHandler) HandleGetVibe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/movies/")
	idStr, ok := strings.CutSuffix(path, "/vibe")
	if !ok || idStr == "" || strings.Contains(idStr, "/") {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", errMissing("movie id"))
		return
	}

	vibe, err := h.deps.MovieVibe(r.Context(), id)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, vibeResponse{MovieID: id, Vibe: vibe})
}
