package preference

import "errors"

// Sentinel kinds for preference errors.
var (
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidReaction   = errors.New("reaction must be like, meh, or dislike")
	ErrInvalidQuizVector = errors.New("quiz vector must have exactly 10 components in [-1, 1]")
)
