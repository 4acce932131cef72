// Package moleculetest builds small molecules with known ring structure
// and geometry for tests and examples.
package moleculetest

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// RingRadius is the in-plane radius used for generated rings, in angstroms.
const RingRadius = 1.45

// ChairHeight is the out-of-plane offset that gives ideal 35.26 degree
// Hill-Reilly flap angles for a six-membered ring of RingRadius.
var ChairHeight = RingRadius * math.Tan(35.26*math.Pi/180) / 4

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// RingPositions returns n points on a circle of the given radius centred on
// center, offset along z by heights[i%len(heights)].
func RingPositions(n int, radius float64, center molecule.Vec3, heights ...float64) []molecule.Vec3 {
	out := make([]molecule.Vec3, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		h := 0.0
		if len(heights) > 0 {
			h = heights[i%len(heights)]
		}
		out[i] = molecule.Vec3{
			center[0] + radius*math.Cos(a),
			center[1] + radius*math.Sin(a),
			center[2] + h,
		}
	}
	return out
}

// AddRing appends a ring of carbons named C1..Cn at the given positions and
// bonds it closed. It returns the new atom indices in ring order.
func AddRing(m *molecule.Molecule, pos []molecule.Vec3) []int {
	idx := make([]int, len(pos))
	for i, p := range pos {
		idx[i] = m.AddAtom(molecule.Atom{Element: "C", Name: fmt.Sprintf("C%d", i+1)}, p)
	}
	for i := range idx {
		must(m.AddBond(idx[i], idx[(i+1)%len(idx)]))
	}
	return idx
}

// Chain returns n carbons bonded in a line (a tree, no rings).
func Chain(n int) *molecule.Molecule {
	m := molecule.New("chain")
	for i := 0; i < n; i++ {
		m.AddAtom(molecule.Atom{Element: "C", Name: fmt.Sprintf("C%d", i+1)}, molecule.Vec3{1.5 * float64(i), 0, 0})
		if i > 0 {
			must(m.AddBond(i-1, i))
		}
	}
	return m
}

// PlanarRing returns a flat regular n-membered carbon ring.
func PlanarRing(n int) *molecule.Molecule {
	m := molecule.New(fmt.Sprintf("planar-%d", n))
	AddRing(m, RingPositions(n, RingRadius, molecule.Vec3{}))
	return m
}

// Chair returns cyclohexane in an ideal chair conformation.
func Chair() *molecule.Molecule {
	m := molecule.New("cyclohexane")
	AddRing(m, RingPositions(6, RingRadius, molecule.Vec3{}, ChairHeight, -ChairHeight))
	return m
}

// PuckeredHexagon returns a six-ring with alternating heights of h.
func PuckeredHexagon(h float64) *molecule.Molecule {
	m := molecule.New("puckered-hexagon")
	AddRing(m, RingPositions(6, RingRadius, molecule.Vec3{}, h, -h))
	return m
}

// Naphthalene returns two flat six-rings sharing one bond (10 atoms).
func Naphthalene() *molecule.Molecule {
	m := molecule.New("naphthalene")
	left := AddRing(m, RingPositions(6, RingRadius, molecule.Vec3{}))
	// atoms 0 and 5 of the left ring are shared; add four more for the right ring
	shared := []int{left[0], left[5]}
	right := make([]int, 4)
	for i := range right {
		a := 2*math.Pi*float64(i+1)/6 + math.Pi/2
		right[i] = m.AddAtom(molecule.Atom{Element: "C", Name: fmt.Sprintf("C%d", 7+i)},
			molecule.Vec3{2*RingRadius*math.Cos(math.Pi/6) + RingRadius*math.Cos(a), RingRadius * math.Sin(a), 0})
	}
	must(m.AddBond(shared[0], right[0]))
	must(m.AddBond(right[0], right[1]))
	must(m.AddBond(right[1], right[2]))
	must(m.AddBond(right[2], right[3]))
	must(m.AddBond(right[3], shared[1]))
	return m
}

// Grid returns a w by h square lattice of carbons.
func Grid(w, h int) *molecule.Molecule {
	m := molecule.New("grid")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := m.AddAtom(molecule.Atom{Element: "C"}, molecule.Vec3{1.5 * float64(x), 1.5 * float64(y), 0})
			if x > 0 {
				must(m.AddBond(i-1, i))
			}
			if y > 0 {
				must(m.AddBond(i-w, i))
			}
		}
	}
	return m
}

// pyranoseNames lists ring atoms in bonding order starting at the ring oxygen.
var pyranoseNames = []string{"O5", "C1", "C2", "C3", "C4", "C5"}

// AddPyranose appends a chair pyranose ring (O5, C1..C5) centred on center
// and returns the ring atom indices keyed by atom name. When reversed is
// set the ring bonds are added in the opposite direction so that a search
// discovers the ring running C5, C4, ..., C1.
func AddPyranose(m *molecule.Molecule, center molecule.Vec3, reversed bool) map[string]int {
	pos := RingPositions(6, RingRadius, center, ChairHeight, -ChairHeight)
	names := append([]string(nil), pyranoseNames...)
	if reversed {
		for i, j := 1, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	idx := make(map[string]int, len(names))
	order := make([]int, len(names))
	for i, name := range names {
		el := "C"
		if name[0] == 'O' {
			el = "O"
		}
		order[i] = m.AddAtom(molecule.Atom{Element: el, Name: name, Residue: "GLC"}, pos[i])
		idx[name] = order[i]
	}
	for i := range order {
		must(m.AddBond(order[i], order[(i+1)%len(order)]))
	}
	return idx
}

// Disaccharide returns two pyranoses joined C1-O-C4 through a glycosidic
// oxygen, plus the index of that bridging oxygen.
func Disaccharide() (*molecule.Molecule, int) {
	m := molecule.New("disaccharide")
	a := AddPyranose(m, molecule.Vec3{}, false)
	b := AddPyranose(m, molecule.Vec3{5, 0, 0}, false)
	o := m.AddAtom(molecule.Atom{Element: "O", Name: "O4", Residue: "GLC"}, molecule.Vec3{2.5, 0.5, 0})
	must(m.AddBond(a["C1"], o))
	must(m.AddBond(o, b["C4"]))
	return m, o
}
