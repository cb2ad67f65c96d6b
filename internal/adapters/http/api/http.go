// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/cinesync/cinesync/internal/adapters/repository"
	"github.com/cinesync/cinesync/internal/domain/blend"
	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/preference"
	"github.com/cinesync/cinesync/internal/domain/ranking"
	"github.com/cinesync/cinesync/internal/domain/vector"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// IngestMovie submits raw metadata for async processing.
	// Returns (accepted, duplicate); accepted=false means backpressure.
	IngestMovie(ctx context.Context, m model.Movie) (bool, bool)

	// SaveQuiz stores a user's explicit quiz vector.
	SaveQuiz(ctx context.Context, userID string, answers []float64) (vector.Vector, error)

	// RecordFeedback applies one watch-and-react event.
	RecordFeedback(ctx context.Context, userID string, movieID int64, rating int, reaction model.Reaction) (model.FeedbackEvent, vector.Vector, error)

	// HomeFeed builds the ranked sections for one user.
	HomeFeed(ctx context.Context, userID string) (ranking.Feed, error)

	// Blend builds the group ranking for a set of users.
	Blend(ctx context.Context, userIDs []string) (blend.Result, error)

	// MovieVibe returns the stored vibe vector for one movie.
	MovieVibe(ctx context.Context, movieID int64) ([]float64, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	moviesHandler   *MoviesHandler
	quizHandler     *QuizHandler
	feedbackHandler *FeedbackHandler
	feedHandler     *FeedHandler
	blendHandler    *BlendHandler
	vibeHandler     *VibeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		moviesHandler:   NewMoviesHandler(deps),
		quizHandler:     NewQuizHandler(deps),
		feedbackHandler: NewFeedbackHandler(deps),
		feedHandler:     NewFeedHandler(deps),
		blendHandler:    NewBlendHandler(deps),
		vibeHandler:     NewVibeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/movies", MetricsMiddleware(s.moviesHandler.HandlePostMovie, "movies"))
	mux.HandleFunc("/movies/", MetricsMiddleware(s.vibeHandler.HandleGetVibe, "vibe"))
	mux.HandleFunc("/quiz", MetricsMiddleware(s.quizHandler.HandlePostQuiz, "quiz"))
	mux.HandleFunc("/feedback", MetricsMiddleware(s.feedbackHandler.HandlePostFeedback, "feedback"))
	mux.HandleFunc("/feed/", MetricsMiddleware(s.feedHandler.HandleGetFeed, "feed"))
	mux.HandleFunc("/blend", MetricsMiddleware(s.blendHandler.HandlePostBlend, "blend"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor translates domain sentinels into HTTP statuses; anything
// unrecognized is an internal error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, preference.ErrInvalidRating),
		errors.Is(err, preference.ErrInvalidReaction),
		errors.Is(err, preference.ErrInvalidQuizVector):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
