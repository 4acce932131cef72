package linkage

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/rings"
)

// ErrInvalidMaxPathLength is returned for a non-positive path length limit.
var ErrInvalidMaxPathLength = errors.New("max path length must be at least 1")

// Finder searches for linkage paths between orientated rings.
type Finder struct {
	MaxPathLength int
	// Checkpoint is consulted after each ring.
	Checkpoint rings.Checkpoint
}

// FindResult holds the registry of paths and how the search ended.
type FindResult struct {
	Registry  *Registry
	Cancelled bool
}

type ringIndex struct {
	atomRing map[int]int
	shared   map[int]bool
}

// indexRings maps each ring atom to the lowest-numbered ring that holds
// it and marks atoms that sit in more than one ring.
func indexRings(rs []rings.SmallRing) ringIndex {
	idx := ringIndex{atomRing: make(map[int]int), shared: make(map[int]bool)}
	for i := range rs {
		for _, a := range rs[i].Atoms {
			if _, ok := idx.atomRing[a]; ok {
				idx.shared[a] = true
				continue
			}
			idx.atomRing[a] = i
		}
	}
	return idx
}

type step struct {
	atom int
	next int
}

// FindLinkages runs a Finder with the given path length limit.
func FindLinkages(v molecule.BondGraph, rs []rings.SmallRing, maxPathLength int) (*FindResult, error) {
	f := Finder{MaxPathLength: maxPathLength}
	return f.Find(v, rs)
}

// Find walks outward from every atom of every orientated ring that is not
// shared with another ring, through atoms that belong to no ring, and
// records a path each time it reaches a higher-numbered orientated ring.
// A path walks at most MaxPathLength atoms before the atom of the ring it
// ends on.
func (f *Finder) Find(v molecule.BondGraph, rs []rings.SmallRing) (*FindResult, error) {
	if f.MaxPathLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxPathLength, f.MaxPathLength)
	}
	n := v.AtomCount()
	for i := range rs {
		for _, a := range rs[i].Atoms {
			if a < 0 || a >= n {
				return nil, fmt.Errorf("ring %d holds atom %d: %w", i, a, molecule.ErrAtomOutOfRange)
			}
		}
	}

	idx := indexRings(rs)
	res := &FindResult{Registry: NewRegistry()}

	for ri := range rs {
		if !rs[ri].Orientated() {
			continue
		}
		for _, a := range rs[ri].Atoms {
			if idx.shared[a] {
				continue
			}
			path := Path{Atoms: []int{a}, StartRing: ri}
			if err := f.fromPartial(v, rs, idx, &path, res.Registry); err != nil {
				return nil, err
			}
		}
		if !f.Checkpoint.Proceed(rings.Progress{Stage: rings.StageLinkages, Done: ri + 1, Total: len(rs), Found: res.Registry.Len()}) {
			res.Cancelled = true
			break
		}
	}
	return res, nil
}

func (f *Finder) fromPartial(v molecule.BondGraph, rs []rings.SmallRing, idx ringIndex, path *Path, reg *Registry) error {
	n := v.AtomCount()
	start := path.StartRing
	used := make(map[int]bool)
	stack := []step{{atom: path.At(path.Len() - 1)}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := s.atom
		if s.next == 0 {
			used[cur] = true
		}

		nbrs := v.Neighbors(cur)
		i := s.next
		for ; i < len(nbrs); i++ {
			nb := nbrs[i]
			if nb < 0 || nb >= n {
				return fmt.Errorf("atom %d lists neighbor %d: %w", cur, nb, molecule.ErrInvalidAdjacency)
			}
			if idx.shared[nb] {
				continue
			}
			if path.Len() > 1 && nb == path.At(path.Len()-2) {
				continue
			}
			if ring, ok := idx.atomRing[nb]; ok {
				if !rs[ring].Orientated() || ring <= start {
					continue
				}
				path.Append(nb)
				path.EndRing = ring
				reg.Add(path)
				path.RemoveLast()
				continue
			}
			if used[nb] {
				continue
			}
			if path.Len() < f.MaxPathLength {
				path.Append(nb)
				stack = append(stack, step{atom: cur, next: i + 1}, step{atom: nb})
				break
			}
		}

		if i >= len(nbrs) && len(stack) > 0 {
			path.RemoveLast()
			delete(used, cur)
		}
	}
	return nil
}
