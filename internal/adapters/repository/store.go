// Package repository defines the record store consumed by the service:
// movie metadata, vibe vectors, and user preference vectors.
package repository

import (
	"context"

	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/vector"
)

// Store provides read/write access to the recommendation records.
type Store interface {
	// UpsertMovie stores (or overwrites) a movie and its vibe vector as one
	// record. Re-ingesting a movie replaces the whole vector, never part of it.
	UpsertMovie(ctx context.Context, m model.Movie, vibe []float64) error

	// Movie returns the stored metadata for id.
	// Returns ErrNotFound when the movie was never ingested.
	Movie(ctx context.Context, id int64) (model.Movie, error)

	// Vibe returns the stored vibe vector for a movie id.
	// Returns ErrNotFound when the movie was never ingested.
	Vibe(ctx context.Context, id int64) ([]float64, error)

	// Candidates returns up to n (movie, vibe) pairs in insertion order.
	// Rankers rely on this order as their stable tie-break.
	Candidates(ctx context.Context, n int) ([]model.Candidate, error)

	// PutPreference stores a user's preference vector verbatim.
	PutPreference(ctx context.Context, userID string, v vector.Vector) error

	// Preference returns the user's current preference vector.
	// Returns ErrNotFound when the user has none.
	Preference(ctx context.Context, userID string) (vector.Vector, error)

	// UpdatePreference runs apply under a per-user lock and stores its
	// result. apply receives nil when the user has no vector yet. This is
	// the only safe way to do the read-modify-write preference update under
	// concurrent feedback for the same user.
	UpdatePreference(ctx context.Context, userID string, apply func(old *vector.Vector) (vector.Vector, error)) (vector.Vector, error)

	// MovieCount and UserCount report store sizes for monitoring.
	MovieCount(ctx context.Context) int
	UserCount(ctx context.Context) int
}
