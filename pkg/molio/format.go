// Package molio reads molecular structures from PDB, SDF/MOL and YAML files
// into molecule.Molecule values ready for ring analysis.
package molio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// Format identifies a structure file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDB
	FormatSDF
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatPDB:
		return "pdb"
	case FormatSDF:
		return "sdf"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdb", "ent":
		return FormatPDB, nil
	case "sdf", "mol", "sd":
		return FormatSDF, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Options controls how structures are read.
type Options struct {
	// Perceive adds bonds by distance when the file has no connectivity.
	Perceive   bool
	Perception molecule.PerceiveOptions
}

// DefaultOptions perceives bonds with the default tolerances.
func DefaultOptions() Options {
	return Options{
		Perceive:   true,
		Perception: molecule.DefaultPerceiveOptions(),
	}
}

// Read parses a structure in the given format.
func Read(r io.Reader, format Format, name string, opts Options) (*molecule.Molecule, error) {
	switch format {
	case FormatPDB:
		return ReadPDB(r, name, opts)
	case FormatSDF:
		return ReadSDF(r, opts)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}
