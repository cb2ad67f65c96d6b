package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrEmptyBlend    = errors.New("blend requires at least one user id")
	ErrVibeDimension = errors.New("stored vibe vector has an incompatible dimension")
)
