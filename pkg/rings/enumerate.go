package rings

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// MaxRings is the default safety cap on rings collected for an n-atom graph.
func MaxRings(n int) int {
	return 2000 + int(100*math.Sqrt(float64(n)))
}

// Enumerator finds rings of at most MaxRingSize atoms.
type Enumerator struct {
	MaxRingSize int
	// Limit overrides the MaxRings cap when positive.
	Limit int
	// Checkpoint is consulted after every back edge.
	Checkpoint Checkpoint
}

// EnumerateResult holds the rings found and how the search ended.
type EnumerateResult struct {
	Rings     []SmallRing
	BackEdges int
	Cap       int
	// Truncated is set when the cap stopped the search early.
	Truncated bool
	// Cancelled is set when the checkpoint stopped the search early.
	Cancelled bool
}

// edgeKey identifies an undirected bond.
type edgeKey struct{ lo, hi int }

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// frame is a suspended step of the search: the atom, and the neighbor
// position to resume scanning from.
type frame struct {
	atom int
	next int
}

type search struct {
	g         molecule.BondGraph
	max       int
	cap       int
	usedAtoms map[int]bool
	usedEdges map[edgeKey]bool
	rings     []SmallRing
	truncated bool
}

// FindSmallRings runs an Enumerator with default settings.
func FindSmallRings(g molecule.BondGraph, maxRingSize int) (*EnumerateResult, error) {
	e := Enumerator{MaxRingSize: maxRingSize}
	return e.Enumerate(g)
}

// Enumerate finds rings through each back edge of g in turn. A back edge
// is consumed once processed, so later searches cannot reuse it, and a
// partial ring is abandoned as soon as one of its atoms touches an atom
// already on the ring. Each ring is therefore reported once and is free of
// chords.
func (e *Enumerator) Enumerate(g molecule.BondGraph) (*EnumerateResult, error) {
	if e.MaxRingSize < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxRingSize, e.MaxRingSize)
	}
	back, err := FindBackEdges(g)
	if err != nil {
		return nil, err
	}

	limit := e.Limit
	if limit <= 0 {
		limit = MaxRings(g.AtomCount())
	}
	s := &search{
		g:         g,
		max:       e.MaxRingSize,
		cap:       limit,
		usedAtoms: make(map[int]bool),
		usedEdges: make(map[edgeKey]bool),
	}
	res := &EnumerateResult{BackEdges: len(back), Cap: limit}

	for i, be := range back {
		ring := NewSmallRing(be.Src, be.Dst)
		s.usedAtoms[be.Dst] = true
		s.fromPartial(&ring)
		s.usedEdges[keyOf(be.Src, be.Dst)] = true
		delete(s.usedAtoms, be.Dst)

		if s.truncated {
			res.Truncated = true
			break
		}
		if !e.Checkpoint.Proceed(Progress{Stage: StageRings, Done: i + 1, Total: len(back), Found: len(s.rings)}) {
			res.Cancelled = true
			break
		}
	}
	res.Rings = s.rings
	return res, nil
}

// fromPartial extends ring, which holds a back edge, into every closed
// ring of at most s.max atoms.
func (s *search) fromPartial(ring *SmallRing) {
	first := ring.First()
	stack := []frame{{atom: ring.Last()}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := f.atom
		nbrs := s.g.Neighbors(cur)
		prev := ring.At(ring.Len() - 2)
		pop := ring.Len() > s.max

		if !pop && f.next == 0 {
			closes, barred := false, false
			for _, nb := range nbrs {
				if nb == prev {
					continue
				}
				if s.usedAtoms[nb] {
					barred = true
					continue
				}
				if s.usedEdges[keyOf(cur, nb)] {
					if nb == first {
						barred = true
					}
					continue
				}
				if nb == first {
					closes = true
				}
			}
			if closes && !barred {
				if len(s.rings) >= s.cap {
					s.truncated = true
					return
				}
				s.rings = append(s.rings, ring.Copy())
			}
			pop = closes || barred
		}

		if !pop {
			i := f.next
			for ; i < len(nbrs); i++ {
				nb := nbrs[i]
				if nb == prev || s.usedEdges[keyOf(cur, nb)] {
					continue
				}
				ring.Append(nb)
				s.usedAtoms[nb] = true
				stack = append(stack, frame{atom: cur, next: i + 1}, frame{atom: nb})
				break
			}
			pop = i >= len(nbrs)
		}

		if pop && len(stack) > 0 {
			ring.RemoveLast()
			delete(s.usedAtoms, cur)
		}
	}
}
