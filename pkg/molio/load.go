package molio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// LoadFile memory-maps a structure file and parses it. The format comes
// from the file extension unless format is set.
func LoadFile(path string, format Format, opts Options) (*molecule.Molecule, error) {
	if format == FormatUnknown {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer reader.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := Read(io.NewSectionReader(reader, 0, int64(reader.Len())), format, name, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
