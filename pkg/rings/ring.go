// Package rings finds the small rings of a bond graph and orients them
// under carbohydrate naming conventions.
package rings

import "slices"

// Orientation records whether a ring's sequence has been canonicalized.
type Orientation uint8

const (
	// Unorientated rings had no recognizable anchor.
	Unorientated Orientation = iota
	// Forward rings already ran anchor -> C1 and were kept as found.
	Forward
	// Reversed rings were flipped so that they run anchor -> C1.
	Reversed
)

func (o Orientation) String() string {
	switch o {
	case Forward:
		return "forward"
	case Reversed:
		return "reversed"
	default:
		return "unorientated"
	}
}

// SmallRing is an ordered ring of atom indices. The bond from the last atom
// back to the first is implied.
type SmallRing struct {
	Atoms       []int
	Orientation Orientation
}

// NewSmallRing creates an unorientated ring from the given atoms.
func NewSmallRing(atoms ...int) SmallRing {
	return SmallRing{Atoms: slices.Clone(atoms)}
}

func (r *SmallRing) Len() int      { return len(r.Atoms) }
func (r *SmallRing) At(i int) int  { return r.Atoms[i] }
func (r *SmallRing) First() int    { return r.Atoms[0] }
func (r *SmallRing) Last() int     { return r.Atoms[len(r.Atoms)-1] }
func (r *SmallRing) Append(a int)  { r.Atoms = append(r.Atoms, a) }
func (r *SmallRing) RemoveLast()   { r.Atoms = r.Atoms[:len(r.Atoms)-1] }
func (r *SmallRing) Orientated() bool {
	return r.Orientation != Unorientated
}

// Contains reports whether atom is a ring member.
func (r *SmallRing) Contains(atom int) bool {
	return slices.Contains(r.Atoms, atom)
}

// Reverse flips the atom order in place.
func (r *SmallRing) Reverse() {
	slices.Reverse(r.Atoms)
}

// Copy returns a ring that shares no storage with r.
func (r *SmallRing) Copy() SmallRing {
	return SmallRing{Atoms: slices.Clone(r.Atoms), Orientation: r.Orientation}
}
