package tmdb

import "errors"

// Sentinel kinds for provider errors. Callers can errors.Is against
// ErrUnavailable to distinguish upstream failure from local bugs.
var ErrUnavailable = errors.New("metadata provider unavailable")
