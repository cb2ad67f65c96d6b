// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/cinesync/cinesync/internal/app"
)

// blendRequest carries the group of users to blend.
type blendRequest struct {
	UserIDs []string `json:"user_ids"`
}

// BlendHandler handles group-recommendation requests.
type BlendHandler struct {
	deps Dependencies
}

// NewBlendHandler creates a new blend handler.
func NewBlendHandler(deps Dependencies) *BlendHandler {
	return &BlendHandler{deps: deps}
}

// HandlePostBlend handles POST /blend requests.
func (h *BlendHandler) HandlePostBlend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req blendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.Blend(r.Context(), req.UserIDs)
	if err != nil {
		if errors.Is(err, app.ErrEmptyBlend) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
