package repository

import "errors"

// Sentinel kinds for record-store errors.
var ErrNotFound = errors.New("record not found")
