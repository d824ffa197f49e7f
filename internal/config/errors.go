package config

import "errors"

// Configuration errors.
var (
	// ErrConfigNotFound is returned when no configuration file exists at the
	// given path or in any of the searched locations.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrMissingKey is returned by Validate when a required key is empty.
	ErrMissingKey = errors.New("missing required configuration key")
)
