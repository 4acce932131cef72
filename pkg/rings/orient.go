package rings

import (
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// anchorCarbons are the names of the carbon bonded to the ring oxygen
// that a canonical ring walks toward.
var anchorCarbons = map[string]bool{
	"C1": true, "C1'": true, "C_1": true,
	"C2": true, "C2'": true, "C_2": true,
}

const oxygenType = "O"

// findAnchor picks the atom to orient around: the first oxygen by element,
// otherwise the first atom typed as oxygen, otherwise the first atom with
// exactly two bonds. It returns the position within the ring or -1.
func findAnchor(v molecule.AtomView, r *SmallRing) int {
	tests := []func(int) bool{
		func(a int) bool { return v.Atom(a).IsOxygen() },
		func(a int) bool { return v.Atom(a).Type == oxygenType },
		func(a int) bool { return len(v.Neighbors(a)) == 2 },
	}
	for _, match := range tests {
		for i, a := range r.Atoms {
			if match(a) {
				return i
			}
		}
	}
	return -1
}

// Orient canonicalizes r so that it runs from its anchor atom toward the
// C1 (or C2) carbon. Rings that are already orientated, or that have no
// anchor or named neighbor, are left alone. The result is r.Orientation.
func Orient(v molecule.AtomView, r *SmallRing) Orientation {
	if r.Orientated() || r.Len() == 0 {
		return r.Orientation
	}
	pos := findAnchor(v, r)
	if pos < 0 {
		return r.Orientation
	}

	n := r.Len()
	before := r.At((pos + n - 1) % n)
	after := r.At((pos + 1) % n)

	switch {
	case anchorCarbons[v.Atom(before).Name]:
		r.Reverse()
		r.Orientation = Reversed
	case anchorCarbons[v.Atom(after).Name]:
		r.Orientation = Forward
	}
	return r.Orientation
}

// OrientAll orients every ring and returns how many ended up orientated.
func OrientAll(v molecule.AtomView, rs []SmallRing) int {
	n := 0
	for i := range rs {
		if Orient(v, &rs[i]) != Unorientated {
			n++
		}
	}
	return n
}
