package blob

import "errors"

var (
	// ErrNotFound is returned when no object matches the key.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidConfig is returned when storage settings are incomplete.
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrInvalidKey is returned for empty or traversal-prone keys.
	ErrInvalidKey = errors.New("invalid object key")
)
