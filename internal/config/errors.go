package config

import (
	"errors"
)

// Error kinds returned by Load; callers match them with errors.Is.
var (
	// ErrInvalidConfig marks a loaded configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure to read or parse a configuration source.
	ErrLoadConfig = errors.New("load config failed")
)
