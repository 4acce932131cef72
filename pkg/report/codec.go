package report

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
)

// compressedMagic prefixes snappy compressed reports. It is followed by a
// CRC32 (IEEE, big endian) of the compressed block, then the block.
var compressedMagic = []byte("PCRZ")

// ErrChecksum is returned when a compressed report fails its checksum.
var ErrChecksum = errors.New("report checksum mismatch")

// EncodeOptions controls report serialization.
type EncodeOptions struct {
	Compress bool
	Indent   bool
}

// Marshal serializes a report.
func Marshal(rep *Report, opts EncodeOptions) ([]byte, error) {
	var data []byte
	var err error
	if opts.Indent && !opts.Compress {
		data, err = json.MarshalIndent(rep, "", "  ")
	} else {
		data, err = json.Marshal(rep)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if !opts.Compress {
		return append(data, '\n'), nil
	}

	block := snappy.Encode(nil, data)
	out := make([]byte, 0, len(compressedMagic)+4+len(block))
	out = append(out, compressedMagic...)
	out = binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(block))
	return append(out, block...), nil
}

// Write serializes a report to w.
func Write(w io.Writer, rep *Report, opts EncodeOptions) error {
	data, err := Marshal(rep, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Unmarshal parses a report in either plain or compressed form.
func Unmarshal(data []byte) (*Report, error) {
	if bytes.HasPrefix(data, compressedMagic) {
		rest := data[len(compressedMagic):]
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: truncated header", ErrChecksum)
		}
		sum, block := binary.BigEndian.Uint32(rest), rest[4:]
		if crc32.ChecksumIEEE(block) != sum {
			return nil, ErrChecksum
		}
		decoded, err := snappy.Decode(nil, block)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress report: %w", err)
		}
		data = decoded
	}

	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &rep, nil
}

// Read parses a report from r.
func Read(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
