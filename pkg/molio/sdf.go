package molio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// ReadSDF reads the first record of an SDF or MOL file in V2000 format.
// The first header line becomes the molecule name. A record without bonds
// is perceived from distances when opts.Perceive is set.
func ReadSDF(r io.Reader, opts Options) (*molecule.Molecule, error) {
	sc := bufio.NewScanner(r)
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end of file in %s", ErrBadFormat, what)
		}
		return sc.Text(), nil
	}

	title, err := next("header")
	if err != nil {
		return nil, err
	}
	for i := 0; i < 2; i++ {
		if _, err := next("header"); err != nil {
			return nil, err
		}
	}

	counts, err := next("counts line")
	if err != nil {
		return nil, err
	}
	if strings.Contains(counts, "V3000") {
		return nil, fmt.Errorf("%w: V3000 records are not supported", ErrBadFormat)
	}
	atomCount, err1 := strconv.Atoi(column(counts, 1, 3))
	bondCount, err2 := strconv.Atoi(column(counts, 4, 6))
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("%w: counts line %q", ErrBadFormat, counts)
	}
	if atomCount == 0 {
		return nil, ErrNoAtoms
	}

	m := molecule.New(strings.TrimSpace(title))
	for i := 0; i < atomCount; i++ {
		line, err := next("atom block")
		if err != nil {
			return nil, err
		}
		var pos molecule.Vec3
		for k, cols := range [3][2]int{{1, 10}, {11, 20}, {21, 30}} {
			v, err := strconv.ParseFloat(column(line, cols[0], cols[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: atom %d coordinate %q", ErrBadFormat, i+1, column(line, cols[0], cols[1]))
			}
			pos[k] = v
		}
		element := column(line, 32, 34)
		if element == "" {
			return nil, fmt.Errorf("%w: atom %d has no element", ErrBadFormat, i+1)
		}
		m.AddAtom(molecule.Atom{Element: element}, pos)
	}

	for i := 0; i < bondCount; i++ {
		line, err := next("bond block")
		if err != nil {
			return nil, err
		}
		from, err1 := strconv.Atoi(column(line, 1, 3))
		to, err2 := strconv.Atoi(column(line, 4, 6))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: bond line %q", ErrBadFormat, line)
		}
		if err := m.AddBond(from-1, to-1); err != nil {
			return nil, fmt.Errorf("bond %d: %w", i+1, err)
		}
	}

	if bondCount == 0 && opts.Perceive {
		if _, err := molecule.PerceiveBonds(m, opts.Perception); err != nil {
			return nil, err
		}
	}
	return m, nil
}
