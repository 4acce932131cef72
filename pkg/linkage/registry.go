// Package linkage finds the bonded paths that connect orientated rings and
// indexes them by the bonds they cross.
package linkage

import "slices"

// Path is a chain of atoms leading from one ring to another. The first atom
// belongs to StartRing, the last to EndRing, and StartRing < EndRing.
type Path struct {
	Atoms     []int
	StartRing int
	EndRing   int
}

func (p *Path) Len() int     { return len(p.Atoms) }
func (p *Path) At(i int) int { return p.Atoms[i] }
func (p *Path) Append(a int) { p.Atoms = append(p.Atoms, a) }
func (p *Path) RemoveLast()  { p.Atoms = p.Atoms[:len(p.Atoms)-1] }

// Copy returns a path that shares no storage with p.
func (p *Path) Copy() Path {
	return Path{Atoms: slices.Clone(p.Atoms), StartRing: p.StartRing, EndRing: p.EndRing}
}

// Pair is an unordered atom pair; Lo <= Hi.
type Pair struct {
	Lo, Hi int
}

// PairOf orders a and b into a Pair.
func PairOf(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{a, b}
}

// Edge is a bond crossed by one or more linkage paths. Paths holds indices
// into the registry's path list.
type Edge struct {
	Left, Right int
	Paths       []int
}

// Registry collects linkage paths and the bonds they traverse. It only
// grows.
type Registry struct {
	paths []Path
	edges map[Pair]*Edge
	order []Pair
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{edges: make(map[Pair]*Edge)}
}

// Add stores a copy of p and records each of its bonds. It returns the
// path's index.
func (r *Registry) Add(p *Path) int {
	id := len(r.paths)
	r.paths = append(r.paths, p.Copy())
	for i := 0; i+1 < p.Len(); i++ {
		key := PairOf(p.At(i), p.At(i+1))
		e, ok := r.edges[key]
		if !ok {
			e = &Edge{Left: key.Lo, Right: key.Hi}
			r.edges[key] = e
			r.order = append(r.order, key)
		}
		e.Paths = append(e.Paths, id)
	}
	return id
}

// Edge looks up the linkage edge for the bond a-b in either order.
func (r *Registry) Edge(a, b int) (*Edge, bool) {
	e, ok := r.edges[PairOf(a, b)]
	return e, ok
}

// SharesEdges reports whether any bond of p is crossed by more than one
// registered path.
func (r *Registry) SharesEdges(p *Path) bool {
	for i := 0; i+1 < p.Len(); i++ {
		if e, ok := r.Edge(p.At(i), p.At(i+1)); ok && len(e.Paths) > 1 {
			return true
		}
	}
	return false
}

// Len returns the number of registered paths.
func (r *Registry) Len() int { return len(r.paths) }

// Path returns the registered path with index id.
func (r *Registry) Path(id int) *Path { return &r.paths[id] }

// Paths returns the registered paths in discovery order.
func (r *Registry) Paths() []Path { return r.paths }

// Edges returns the linkage edges in the order their bonds were first seen.
func (r *Registry) Edges() []*Edge {
	out := make([]*Edge, len(r.order))
	for i, k := range r.order {
		out[i] = r.edges[k]
	}
	return out
}

// PathsBetween returns the indices of paths joining rings a and b.
func (r *Registry) PathsBetween(a, b int) []int {
	if a > b {
		a, b = b, a
	}
	var ids []int
	for i, p := range r.paths {
		if p.StartRing == a && p.EndRing == b {
			ids = append(ids, i)
		}
	}
	return ids
}
