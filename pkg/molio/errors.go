package molio

import "errors"

var (
	// ErrBadFormat is returned for malformed structure records.
	ErrBadFormat = errors.New("malformed structure file")

	// ErrUnknownFormat is returned when a file format cannot be determined.
	ErrUnknownFormat = errors.New("unknown structure format")

	// ErrNoAtoms is returned when a file holds no atom records.
	ErrNoAtoms = errors.New("structure has no atoms")
)
