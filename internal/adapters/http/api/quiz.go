// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// quizRequest carries an explicit quiz submission: one value per axis.
type quizRequest struct {
	UserID string    `json:"user_id"`
	Vector []float64 `json:"vector"`
}

type quizResponse struct {
	UserID string    `json:"user_id"`
	Vector []float64 `json:"preference_vector"`
}

// QuizHandler handles quiz submissions.
type QuizHandler struct {
	deps Dependencies
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(deps Dependencies) *QuizHandler {
	return &QuizHandler{deps: deps}
}

// HandlePostQuiz handles POST /quiz requests. The submitted vector is stored
// verbatim after validation.
func (h *QuizHandler) HandlePostQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errMissing("user_id"))
		return
	}

	v, err := h.deps.SaveQuiz(r.Context(), req.UserID, req.Vector)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{UserID: req.UserID, Vector: v.Slice()})
}
