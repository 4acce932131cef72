// Package molecule holds the read-only bond graph that ring analysis runs on:
// atoms with chemical attributes, their coordinates and up to MaxBonds
// bonded neighbors each.
package molecule

import (
	"fmt"
	"slices"
)

// MaxBonds is the hard limit on bonded neighbors per atom.
const MaxBonds = 12

const oxygen = 8

// Atom carries the attributes ring analysis reads from an atom.
type Atom struct {
	Element      string `json:"element" yaml:"element"`
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	AtomicNumber int    `json:"atomic_number,omitempty" yaml:"atomic_number,omitempty"`
	Residue      string `json:"residue,omitempty" yaml:"residue,omitempty"`
	ResidueSeq   int    `json:"residue_seq,omitempty" yaml:"residue_seq,omitempty"`
	Chain        string `json:"chain,omitempty" yaml:"chain,omitempty"`
}

// IsOxygen reports whether the atom is an oxygen by element.
func (a Atom) IsOxygen() bool {
	return a.AtomicNumber == oxygen
}

// Vec3 is a point in cartesian space, in angstroms.
type Vec3 [3]float64

// BondGraph is the adjacency view used by the graph searches.
type BondGraph interface {
	AtomCount() int
	Neighbors(i int) []int
}

// AtomView adds atom attributes to the adjacency view.
type AtomView interface {
	BondGraph
	Atom(i int) Atom
}

// Frame supplies atom coordinates.
type Frame interface {
	Position(i int) Vec3
}

// Structure is everything a full ring analysis needs.
type Structure interface {
	AtomView
	Frame
}

// Molecule is an in-memory Structure.
type Molecule struct {
	Name string

	atoms   []Atom
	x, y, z []float64
	bonds   [][]int
}

// New creates an empty molecule.
func New(name string) *Molecule {
	return &Molecule{Name: name}
}

// AddAtom appends an atom and returns its index. The atomic number is
// derived from the element when it is not set.
func (m *Molecule) AddAtom(a Atom, pos Vec3) int {
	a.Element = NormalizeElement(a.Element)
	if a.AtomicNumber == 0 {
		a.AtomicNumber = AtomicNumber(a.Element)
	}
	m.atoms = append(m.atoms, a)
	m.x = append(m.x, pos[0])
	m.y = append(m.y, pos[1])
	m.z = append(m.z, pos[2])
	m.bonds = append(m.bonds, nil)
	return len(m.atoms) - 1
}

// AddBond joins atoms a and b. Adding an existing bond is a no-op. When
// either atom is already at MaxBonds the bond is rejected and the
// molecule is left unchanged.
func (m *Molecule) AddBond(a, b int) error {
	if a < 0 || a >= len(m.atoms) {
		return fmt.Errorf("bond %d-%d: %w: %d", a, b, ErrAtomOutOfRange, a)
	}
	if b < 0 || b >= len(m.atoms) {
		return fmt.Errorf("bond %d-%d: %w: %d", a, b, ErrAtomOutOfRange, b)
	}
	if a == b {
		return fmt.Errorf("bond %d-%d: %w", a, b, ErrSelfBond)
	}
	if m.Bonded(a, b) {
		return nil
	}
	if len(m.bonds[a]) >= MaxBonds {
		return fmt.Errorf("atom %d: %w", a, ErrTooManyBonds)
	}
	if len(m.bonds[b]) >= MaxBonds {
		return fmt.Errorf("atom %d: %w", b, ErrTooManyBonds)
	}
	m.bonds[a] = append(m.bonds[a], b)
	m.bonds[b] = append(m.bonds[b], a)
	return nil
}

// Bonded reports whether a and b share a bond.
func (m *Molecule) Bonded(a, b int) bool {
	if a < 0 || a >= len(m.bonds) {
		return false
	}
	return slices.Contains(m.bonds[a], b)
}

// AtomCount returns the number of atoms.
func (m *Molecule) AtomCount() int { return len(m.atoms) }

// Atom returns the attributes of atom i.
func (m *Molecule) Atom(i int) Atom { return m.atoms[i] }

// Neighbors returns the bonded neighbors of atom i in insertion order.
// The returned slice must not be modified.
func (m *Molecule) Neighbors(i int) []int { return m.bonds[i] }

// BondCount returns the number of neighbors of atom i.
func (m *Molecule) BondCount(i int) int { return len(m.bonds[i]) }

// Position returns the coordinates of atom i.
func (m *Molecule) Position(i int) Vec3 {
	return Vec3{m.x[i], m.y[i], m.z[i]}
}

// SetPosition moves atom i.
func (m *Molecule) SetPosition(i int, pos Vec3) {
	m.x[i], m.y[i], m.z[i] = pos[0], pos[1], pos[2]
}

// TotalBonds returns the number of undirected bonds.
func (m *Molecule) TotalBonds() int {
	n := 0
	for _, nb := range m.bonds {
		n += len(nb)
	}
	return n / 2
}

// Validate checks a BondGraph for out-of-range neighbors, asymmetric
// adjacency and atoms above MaxBonds.
func Validate(g BondGraph) error {
	n := g.AtomCount()
	for i := 0; i < n; i++ {
		nb := g.Neighbors(i)
		if len(nb) > MaxBonds {
			return fmt.Errorf("atom %d has %d neighbors: %w", i, len(nb), ErrInvalidAdjacency)
		}
		for _, j := range nb {
			if j < 0 || j >= n {
				return fmt.Errorf("atom %d lists neighbor %d: %w", i, j, ErrInvalidAdjacency)
			}
			if j == i {
				return fmt.Errorf("atom %d lists itself: %w", i, ErrInvalidAdjacency)
			}
			if !slices.Contains(g.Neighbors(j), i) {
				return fmt.Errorf("bond %d-%d is one-sided: %w", i, j, ErrInvalidAdjacency)
			}
		}
	}
	return nil
}

// Validate checks the molecule's adjacency.
func (m *Molecule) Validate() error {
	return Validate(m)
}
