// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// feedResponse wraps the ranked sections. Reason is set only for the
// explicit empty-pool case so clients can distinguish "no candidates yet"
// from a feed that simply ranked nothing highly.
type feedResponse struct {
	UserID   string `json:"user_id"`
	Sections any    `json:"sections"`
	Reason   string `json:"reason,omitempty"`
}

// FeedHandler handles home-feed requests.
type FeedHandler struct {
	deps Dependencies
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(deps Dependencies) *FeedHandler {
	return &FeedHandler{deps: deps}
}

// HandleGetFeed handles GET /feed/{user_id} requests.
func (h *FeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/feed/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", errMissing("user_id"))
		return
	}

	feed, err := h.deps.HomeFeed(r.Context(), userID)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}

	resp := feedResponse{UserID: userID, Sections: feed.Sections}
	if len(feed.Sections) == 0 {
		resp.Sections = []any{}
		resp.Reason = "no_candidates"
	}
	writeJSON(w, http.StatusOK, resp)
}
