// Package report turns analysis results into a JSON document for
// downstream tools.
package report

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-paperchain/pkg/analysis"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/pucker"
)

// Report is the serialized form of one analysis.
type Report struct {
	ID         string    `json:"id"`
	AnalysisID string    `json:"analysisId"`
	Molecule   string    `json:"molecule"`
	Generated  time.Time `json:"generated"`
	Params     Params    `json:"params"`
	Rings      []Ring    `json:"rings"`
	Linkages   []Linkage `json:"linkages"`
	Summary    Summary   `json:"summary"`
}

// Params echoes the analysis settings.
type Params struct {
	MaxRingSize   int    `json:"maxRingSize"`
	MaxPathLength int    `json:"maxPathLength"`
	Method        string `json:"method"`
}

// Ring describes one ring and its classification by the selected method.
type Ring struct {
	Index       int      `json:"index"`
	Atoms       []int    `json:"atoms"`
	Names       []string `json:"names,omitempty"`
	Orientation string   `json:"orientation"`
	Family      string   `json:"family"`
	Confident   bool     `json:"confident"`
	Color       string   `json:"color"`
	HillReilly  *Pucker  `json:"hillReilly,omitempty"`
	CremerPople *Pucker  `json:"cremerPople,omitempty"`
}

// Pucker is one method's classification of a ring.
type Pucker struct {
	Family    string    `json:"family"`
	Reference int       `json:"reference"`
	Confident bool      `json:"confident"`
	Color     string    `json:"color"`
	Angles    []float64 `json:"angles,omitempty"`
	Amplitude float64   `json:"amplitude,omitempty"`
	Theta     float64   `json:"theta,omitempty"`
	Phi       float64   `json:"phi,omitempty"`
}

// Linkage is a path of atoms joining two rings.
type Linkage struct {
	Index     int   `json:"index"`
	StartRing int   `json:"startRing"`
	EndRing   int   `json:"endRing"`
	Atoms     []int `json:"atoms"`
	// Shared is set when the path runs over a bond another path also uses.
	Shared bool `json:"shared"`
}

// Summary holds counts over the whole result.
type Summary struct {
	Rings         int            `json:"rings"`
	Orientated    int            `json:"orientated"`
	Linkages      int            `json:"linkages"`
	BackEdges     int            `json:"backEdges"`
	RingCap       int            `json:"ringCap"`
	Truncated     bool           `json:"truncated"`
	Cancelled     bool           `json:"cancelled"`
	BySize        map[string]int `json:"bySize"`
	ByFamily      map[string]int `json:"byFamily"`
	LowConfidence int            `json:"lowConfidence"`
	AverageLength float64        `json:"averageLength"`
}

// Build converts res into a Report. Atom names come from v when it is
// not nil.
func Build(res *analysis.Result, v molecule.AtomView) *Report {
	rep := &Report{
		ID:         uuid.New().String(),
		AnalysisID: res.ID,
		Molecule:   res.Molecule,
		Generated:  time.Now().UTC(),
		Params: Params{
			MaxRingSize:   res.Params.MaxRingSize,
			MaxPathLength: res.Params.MaxPathLength,
			Method:        res.Params.Method.String(),
		},
		Rings:    make([]Ring, len(res.Rings)),
		Linkages: []Linkage{},
	}

	for i, r := range res.Rings {
		ring := Ring{
			Index:       i,
			Atoms:       append([]int(nil), r.Atoms...),
			Orientation: r.Orientation.String(),
			Family:      pucker.FamilyNone.String(),
		}
		if v != nil {
			ring.Names = make([]string, len(r.Atoms))
			for k, a := range r.Atoms {
				ring.Names[k] = v.Atom(a).Name
			}
		}
		if i < len(res.Puckers) {
			p := res.Puckers[i]
			sel := p.Selected(res.Params.Method)
			ring.Family = sel.Family.String()
			ring.Confident = sel.Confident
			ring.Color = sel.Color.Hex()
			ring.HillReilly = puckerOf(p.HillReilly)
			ring.CremerPople = puckerOf(p.CremerPople)
		}
		rep.Rings[i] = ring
	}

	if res.Linkages != nil {
		for i, p := range res.Linkages.Paths() {
			rep.Linkages = append(rep.Linkages, Linkage{
				Index:     i,
				StartRing: p.StartRing,
				EndRing:   p.EndRing,
				Atoms:     append([]int(nil), p.Atoms...),
				Shared:    res.Linkages.SharesEdges(&p),
			})
		}
	}

	stats := res.Stats()
	rep.Summary = Summary{
		Rings:         stats.Rings,
		Orientated:    stats.Orientated,
		Linkages:      stats.Linkages,
		BackEdges:     res.BackEdges,
		RingCap:       res.RingCap,
		Truncated:     res.Truncated,
		Cancelled:     res.Cancelled,
		BySize:        make(map[string]int, len(stats.BySize)),
		ByFamily:      stats.ByFamily,
		LowConfidence: stats.LowConfidence,
		AverageLength: stats.AverageLength,
	}
	for size, n := range stats.BySize {
		rep.Summary.BySize[strconv.Itoa(size)] = n
	}
	return rep
}

func puckerOf(c pucker.Classification) *Pucker {
	return &Pucker{
		Family:    c.Family.String(),
		Reference: c.Reference,
		Confident: c.Confident,
		Color:     c.Color.Hex(),
		Angles:    c.Angles,
		Amplitude: c.Amplitude,
		Theta:     c.Theta,
		Phi:       c.Phi,
	}
}
