package molio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/validation"
)

// Document is the YAML structure format. Bonds are pairs of zero based
// atom indices.
//
//	name: furanose
//	atoms:
//	  - {element: O, name: O4, x: 0.0, y: 1.2, z: 0.1}
//	bonds:
//	  - [0, 1]
type Document struct {
	Name  string                  `yaml:"name"`
	Atoms []validation.AtomRecord `yaml:"atoms"`
	Bonds [][2]int                `yaml:"bonds"`
}

// ReadYAML reads a Document. Every atom record is validated.
func ReadYAML(r io.Reader) (*molecule.Molecule, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoAtoms
		}
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return doc.Molecule()
}

// Molecule converts the document into a molecule.
func (d *Document) Molecule() (*molecule.Molecule, error) {
	if len(d.Atoms) == 0 {
		return nil, ErrNoAtoms
	}

	m := molecule.New(d.Name)
	for i := range d.Atoms {
		rec := &d.Atoms[i]
		if err := validation.ValidateAtomRecord(rec); err != nil {
			return nil, fmt.Errorf("%w: atom %d: %v", ErrBadFormat, i, err)
		}
		m.AddAtom(molecule.Atom{
			Element: rec.Element,
			Name:    rec.Name,
			Type:    rec.Type,
		}, molecule.Vec3{rec.X, rec.Y, rec.Z})
	}
	for _, b := range d.Bonds {
		if err := m.AddBond(b[0], b[1]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// WriteYAML writes a molecule as a Document.
func WriteYAML(w io.Writer, m *molecule.Molecule) error {
	doc := Document{Name: m.Name}
	for i := 0; i < m.AtomCount(); i++ {
		a, p := m.Atom(i), m.Position(i)
		doc.Atoms = append(doc.Atoms, validation.AtomRecord{
			Element: a.Element, Name: a.Name, Type: a.Type,
			X: p[0], Y: p[1], Z: p[2],
		})
		for _, j := range m.Neighbors(i) {
			if j > i {
				doc.Bonds = append(doc.Bonds, [2]int{i, j})
			}
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
