package rings

import "errors"

var (
	// ErrInvalidMaxRingSize is returned for a ring size limit below 3
	ErrInvalidMaxRingSize = errors.New("max ring size must be at least 3")
)
