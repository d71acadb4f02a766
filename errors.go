package chainmap

import "errors"

var (
	// ErrKeyNotFound is returned by Load and Delete when the key is not
	// present. It is always surfaced to the caller, never swallowed.
	ErrKeyNotFound = errors.New("chainmap: key not found")

	// ErrInvalidVolume is returned when a table is constructed with a
	// non-positive bucket count.
	ErrInvalidVolume = errors.New("chainmap: volume must be positive")
)
