// Package preference implements the online preference-vector learning rule.
//
// Every feedback event nudges the user's taste vector toward (or away from)
// the watched movie's vibe vector with an exponential-moving-average step.
// The update is O(1) per event and keeps no history, which makes it cheap and
// easy to explain; the trade-off is that the caller must serialize updates
// per user since the rule is read-modify-write.
package preference

import (
	"math"

	"github.com/cinesync/cinesync/internal/domain/model"
	"github.com/cinesync/cinesync/internal/domain/vector"
)

// Update-rule constants.
const (
	baseAlpha  = 0.15 // learning-rate scale against |signal|
	floorAlpha = 0.05 // minimum step so every event moves the vector

	likeFactor    = 1.0
	mehFactor     = 0.3
	dislikeFactor = -1.0

	minRating = 1
	maxRating = 5
)

// Apply computes the next preference vector from the previous one, the
// watched movie's vibe vector, and the feedback signal. A nil old vector is
// the bootstrap case and is treated as the zero vector.
//
// Rating outside [1, 5] and unrecognized reactions are precondition
// violations and are rejected, not clamped.
func Apply(old *vector.Vector, movieVibe vector.Vector, rating int, reaction model.Reaction) (vector.Vector, error) {
	if rating < minRating || rating > maxRating {
		return vector.Vector{}, ErrInvalidRating
	}
	factor, ok := reactionFactor(reaction)
	if !ok {
		return vector.Vector{}, ErrInvalidReaction
	}

	prev := vector.Zero()
	if old != nil {
		prev = *old
	}

	// ratingScore maps {1..5} onto {-1, -0.5, 0, 0.5, 1}.
	ratingScore := float64(rating-3) / 2
	signal := ratingScore * factor

	// A neutral signal (rating 3, or meh on rating 3) still nudges the
	// vector by the floor step.
	alpha := baseAlpha * math.Abs(signal)
	if alpha == 0 {
		alpha = floorAlpha
	}

	direction := 1.0
	if signal < 0 {
		direction = -1.0
	}

	next := prev
	for i := range next {
		target := direction * movieVibe[i]
		next[i] = vector.Clamp((1-alpha)*prev[i] + alpha*target)
	}
	return next, nil
}

func reactionFactor(r model.Reaction) (float64, bool) {
	switch r {
	case model.ReactionLike:
		return likeFactor, true
	case model.ReactionMeh:
		return mehFactor, true
	case model.ReactionDislike:
		return dislikeFactor, true
	default:
		return 0, false
	}
}

// FromQuiz validates an explicit quiz submission and returns the vector to
// store verbatim. The submission must carry exactly one value per axis, each
// already inside [-1, 1].
func FromQuiz(answers []float64) (vector.Vector, error) {
	v, ok := vector.FromSlice(answers)
	if !ok {
		return vector.Vector{}, ErrInvalidQuizVector
	}
	if !v.InRange() {
		return vector.Vector{}, ErrInvalidQuizVector
	}
	return v, nil
}
