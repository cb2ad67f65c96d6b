package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("ingestion queue is full")
)

func errMissing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrBadRequest, field)
}

func errNegative(field string) error {
	return fmt.Errorf("%w: %s must not be negative", ErrBadRequest, field)
}
