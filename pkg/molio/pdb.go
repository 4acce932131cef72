package molio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// column returns the 1-based inclusive columns [start, end] of a fixed
// width record, trimmed. Short lines yield what is present.
func column(line string, start, end int) string {
	if start > len(line) {
		return ""
	}
	return strings.TrimSpace(line[start-1 : min(end, len(line))])
}

// ReadPDB reads the first model of a PDB file. ATOM and HETATM records
// become atoms; alternate locations other than the first are skipped.
// CONECT records supply bonds. When there are none and opts.Perceive is
// set, bonds are perceived from distances.
func ReadPDB(r io.Reader, name string, opts Options) (*molecule.Molecule, error) {
	m := molecule.New(name)
	serials := make(map[int]int)
	var conect [][]int

	sc := bufio.NewScanner(r)
	lineNo := 0
scan:
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		record := column(line, 1, 6)

		switch record {
		case "HEADER":
			if m.Name == "" {
				m.Name = column(line, 63, 66)
			}
		case "ATOM", "HETATM":
			if alt := column(line, 17, 17); alt != "" && alt != "A" {
				continue
			}
			serial, atom, pos, err := parseAtomRecord(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			serials[serial] = m.AddAtom(atom, pos)
		case "CONECT":
			ids, err := parseConect(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if len(ids) > 1 {
				conect = append(conect, ids)
			}
		case "ENDMDL", "END":
			break scan
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if m.AtomCount() == 0 {
		return nil, ErrNoAtoms
	}

	for _, ids := range conect {
		from, ok := serials[ids[0]]
		if !ok {
			continue
		}
		for _, s := range ids[1:] {
			to, ok := serials[s]
			if !ok {
				continue
			}
			if err := m.AddBond(from, to); err != nil {
				return nil, fmt.Errorf("CONECT %d-%d: %w", ids[0], s, err)
			}
		}
	}

	if len(conect) == 0 && opts.Perceive {
		if _, err := molecule.PerceiveBonds(m, opts.Perception); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func parseAtomRecord(line string) (int, molecule.Atom, molecule.Vec3, error) {
	var pos molecule.Vec3

	serial, err := strconv.Atoi(column(line, 7, 11))
	if err != nil {
		return 0, molecule.Atom{}, pos, fmt.Errorf("%w: atom serial %q", ErrBadFormat, column(line, 7, 11))
	}

	for i, cols := range [3][2]int{{31, 38}, {39, 46}, {47, 54}} {
		v, err := strconv.ParseFloat(column(line, cols[0], cols[1]), 64)
		if err != nil {
			return 0, molecule.Atom{}, pos, fmt.Errorf("%w: coordinate %q", ErrBadFormat, column(line, cols[0], cols[1]))
		}
		pos[i] = v
	}

	atom := molecule.Atom{
		Name:    column(line, 13, 16),
		Residue: column(line, 18, 20),
		Chain:   column(line, 22, 22),
		Element: column(line, 77, 78),
	}
	if seq, err := strconv.Atoi(column(line, 23, 26)); err == nil {
		atom.ResidueSeq = seq
	}
	if atom.Element == "" {
		atom.Element = elementFromName(line)
	}
	return serial, atom, pos, nil
}

// elementFromName infers an element from the atom name columns. Names that
// start in column 13 may carry a two letter element; names starting in
// column 14 carry a one letter element.
func elementFromName(line string) string {
	raw := ""
	if len(line) >= 13 {
		raw = line[12:min(16, len(line))]
	}
	letters := strings.TrimLeftFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) })
	if letters == "" {
		return ""
	}
	if raw[0] != ' ' && !unicode.IsDigit(rune(raw[0])) && len(letters) >= 2 {
		if two := letters[:2]; molecule.AtomicNumber(two) != 0 {
			return two
		}
	}
	return letters[:1]
}

func parseConect(line string) ([]int, error) {
	var ids []int
	for start := 7; start <= 27; start += 5 {
		f := column(line, start, start+4)
		if f == "" {
			continue
		}
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: CONECT serial %q", ErrBadFormat, f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
