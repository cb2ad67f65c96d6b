// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cinesync/cinesync/internal/domain/model"
)

// feedbackRequest carries one watch-and-react event.
type feedbackRequest struct {
	UserID   string `json:"user_id"`
	MovieID  int64  `json:"movie_id"`
	Rating   int    `json:"rating"`
	Reaction string `json:"reaction"`
}

func (f feedbackRequest) validate() error {
	switch {
	case strings.TrimSpace(f.UserID) == "":
		return errMissing("user_id")
	case f.MovieID <= 0:
		return errMissing("movie_id")
	case strings.TrimSpace(f.Reaction) == "":
		return errMissing("reaction")
	}
	return nil
}

type feedbackResponse struct {
	EventID string    `json:"event_id"`
	Vector  []float64 `json:"preference_vector"`
}

// FeedbackHandler handles implicit-feedback submissions.
type FeedbackHandler struct {
	deps Dependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps Dependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

// HandlePostFeedback handles POST /feedback requests. Rating and reaction
// preconditions come back as 400; an un-ingested movie as 404.
func (h *FeedbackHandler) HandlePostFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	event, next, err := h.deps.RecordFeedback(r.Context(), req.UserID, req.MovieID, req.Rating, model.Reaction(req.Reaction))
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, feedbackResponse{
		EventID: event.EventID,
		Vector:  next.Slice(),
	})
}
