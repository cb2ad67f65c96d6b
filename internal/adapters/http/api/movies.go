// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cinesync/cinesync/internal/domain/model"
)

// movieRequest mirrors the metadata-provider record shape for POST /movies.
// Everything except id is optional; partial records degrade gracefully
// during extraction.
type movieRequest struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	Runtime     int     `json:"runtime"`
}

func (m movieRequest) validate() error {
	switch {
	case m.ID <= 0:
		return errMissing("id")
	case strings.TrimSpace(m.Title) == "":
		return errMissing("title")
	case m.Popularity < 0:
		return errNegative("popularity")
	case m.VoteCount < 0:
		return errNegative("vote_count")
	case m.Runtime < 0:
		return errNegative("runtime")
	}
	return nil
}

func (m movieRequest) toModel() model.Movie {
	return model.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		GenreIDs:    m.GenreIDs,
		ReleaseDate: m.ReleaseDate,
		Popularity:  m.Popularity,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Runtime:     m.Runtime,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// MoviesHandler handles ingestion requests.
type MoviesHandler struct {
	deps Dependencies
}

// NewMoviesHandler creates a new movies handler.
func NewMoviesHandler(deps Dependencies) *MoviesHandler {
	return &MoviesHandler{deps: deps}
}

// HandlePostMovie handles POST /movies requests.
func (h *MoviesHandler) HandlePostMovie(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req movieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	accepted, duplicate := h.deps.IngestMovie(r.Context(), req.toModel())
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	if !accepted {
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
