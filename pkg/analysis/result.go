package analysis

import (
	"time"

	"github.com/dd0wney/cluso-paperchain/pkg/linkage"
	"github.com/dd0wney/cluso-paperchain/pkg/pucker"
	"github.com/dd0wney/cluso-paperchain/pkg/rings"
)

// RingPucker holds both classifications of one ring.
type RingPucker struct {
	HillReilly  pucker.Classification
	CremerPople pucker.Classification
}

// Selected returns the classification for the given method.
func (rp RingPucker) Selected(m pucker.Method) pucker.Classification {
	if m == pucker.CremerPople {
		return rp.CremerPople
	}
	return rp.HillReilly
}

// Result is the outcome of one analysis.
type Result struct {
	ID       string
	Molecule string
	Params   Params

	// Rings are copies owned by the caller.
	Rings []rings.SmallRing
	// Linkages may be shared with other results from the same Analyzer
	// and must not be modified.
	Linkages *linkage.Registry
	// Puckers is parallel to Rings. It is shorter when the analysis was
	// cancelled during the pucker stage.
	Puckers []RingPucker

	BackEdges  int
	RingCap    int
	Orientated int

	Truncated bool
	Cancelled bool
	Cached    bool

	Durations map[string]time.Duration
}

// Colors returns the color of each classified ring for the selected method.
func (r *Result) Colors() []pucker.Color {
	colors := make([]pucker.Color, len(r.Puckers))
	for i, p := range r.Puckers {
		colors[i] = p.Selected(r.Params.Method).Color
	}
	return colors
}

// Stats summarizes the rings of a result
type Stats struct {
	Rings         int
	Orientated    int
	Linkages      int
	SmallestRing  int
	LargestRing   int
	AverageLength float64
	BySize        map[int]int
	ByFamily      map[string]int
	LowConfidence int
}

// Stats computes ring statistics, with families from the selected method.
func (r *Result) Stats() Stats {
	stats := Stats{
		Rings:      len(r.Rings),
		Orientated: r.Orientated,
		BySize:     make(map[int]int),
		ByFamily:   make(map[string]int),
	}
	if r.Linkages != nil {
		stats.Linkages = r.Linkages.Len()
	}
	if len(r.Rings) == 0 {
		return stats
	}

	stats.SmallestRing = r.Rings[0].Len()
	stats.LargestRing = r.Rings[0].Len()
	total := 0
	for _, ring := range r.Rings {
		n := ring.Len()
		total += n
		stats.BySize[n]++
		stats.SmallestRing = min(stats.SmallestRing, n)
		stats.LargestRing = max(stats.LargestRing, n)
	}
	stats.AverageLength = float64(total) / float64(len(r.Rings))

	for _, p := range r.Puckers {
		c := p.Selected(r.Params.Method)
		stats.ByFamily[c.Family.String()]++
		if !c.Confident {
			stats.LowConfidence++
		}
	}
	return stats
}
