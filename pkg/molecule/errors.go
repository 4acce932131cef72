package molecule

import "errors"

var (
	// ErrAtomOutOfRange is returned when an atom index is outside the molecule
	ErrAtomOutOfRange = errors.New("atom index out of range")

	// ErrSelfBond is returned when a bond would join an atom to itself
	ErrSelfBond = errors.New("atom cannot bond to itself")

	// ErrTooManyBonds is returned when an atom already has MaxBonds neighbors
	ErrTooManyBonds = errors.New("atom bond limit exceeded")

	// ErrInvalidAdjacency is returned when a neighbor list is inconsistent
	ErrInvalidAdjacency = errors.New("invalid adjacency")
)
