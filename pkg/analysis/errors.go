package analysis

import "errors"

var (
	// ErrInvalidParams is returned when analysis parameters are out of range.
	ErrInvalidParams = errors.New("invalid analysis parameters")

	// ErrNilStructure is returned when no structure is supplied.
	ErrNilStructure = errors.New("structure is nil")
)
