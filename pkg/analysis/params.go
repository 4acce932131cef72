package analysis

import (
	"fmt"

	"github.com/dd0wney/cluso-paperchain/pkg/pucker"
	"github.com/dd0wney/cluso-paperchain/pkg/validation"
)

// Params are the tunable settings of one analysis.
type Params struct {
	// MaxPathLength bounds how far a linkage path walks between rings.
	MaxPathLength int
	// MaxRingSize is the largest ring, in atoms, that is searched for.
	MaxRingSize int
	// Method selects which pucker classification colors the rings.
	Method pucker.Method
}

// DefaultParams returns the usual settings for carbohydrate work.
func DefaultParams() Params {
	return Params{
		MaxPathLength: 5,
		MaxRingSize:   10,
		Method:        pucker.HillReilly,
	}
}

// Validate checks the parameters are within their allowed ranges.
func (p Params) Validate() error {
	err := validation.ValidateAnalysisRequest(&validation.AnalysisRequest{
		MaxPathLength: p.MaxPathLength,
		MaxRingSize:   p.MaxRingSize,
		Method:        p.Method.String(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// cacheKey identifies a ring and linkage search. The pucker method only
// affects coloring, so it is not part of the key.
type cacheKey struct {
	maxPathLength int
	maxRingSize   int
}

func (p Params) key() cacheKey {
	return cacheKey{maxPathLength: p.MaxPathLength, maxRingSize: p.MaxRingSize}
}
