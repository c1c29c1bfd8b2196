package huffman

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

const (
	sidecarMagic   = "HUFT"
	sidecarVersion = 1
)

// Sidecar holds what a decoder needs besides the packed stream: the
// frequency table the code was built from and a checksum of the input.
// Packed output never embeds it; callers store it separately if they want
// the stream to be decodable.
//
// Layout: magic(4) | version(1) | count(uint16) | count × (symbol:uint8, freq:uint64) | checksum(uint64)
// All integers are little-endian; entries are in ascending symbol order.
type Sidecar struct {
	Frequencies Frequencies
	Checksum    uint64
}

// SidecarFor returns the sidecar for an encoding result.
func SidecarFor(res *Result) *Sidecar {
	return &Sidecar{Frequencies: res.Frequencies, Checksum: res.Checksum}
}

// Table rebuilds the code table. The tree tie-break is fixed, so this is the
// same table the encoder used.
func (s *Sidecar) Table() (Table, error) {
	return TableFor(s.Frequencies)
}

// Total returns the number of symbols in the original input.
func (s *Sidecar) Total() uint64 {
	return s.Frequencies.Total()
}

// WriteSidecar writes s to w.
func WriteSidecar(w io.Writer, s *Sidecar) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(sidecarMagic); err != nil {
		return err
	}
	if err := bw.WriteByte(sidecarVersion); err != nil {
		return err
	}
	syms := s.Frequencies.Symbols()
	if err := binary.Write(bw, binary.LittleEndian, uint16(len(syms))); err != nil {
		return err
	}
	for _, b := range syms {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, s.Frequencies[b]); err != nil {
			return err
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, s.Checksum); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadSidecar reads a sidecar written by WriteSidecar.
func ReadSidecar(r io.Reader) (*Sidecar, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(sidecarMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if string(magic) != sidecarMagic {
		return nil, ErrInvalidHeader
	}
	v, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if v != sidecarVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidHeader, v)
	}
	var count uint16
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if count > 256 {
		return nil, fmt.Errorf("%w: %d symbols", ErrInvalidHeader, count)
	}
	freqs := make(Frequencies, count)
	for i := 0; i < int(count); i++ {
		b, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		var f uint64
		if err := binary.Read(br, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		if _, dup := freqs[b]; dup || f == 0 {
			return nil, fmt.Errorf("%w: bad entry for 0x%02x", ErrInvalidHeader, b)
		}
		freqs[b] = f
	}
	s := &Sidecar{Frequencies: freqs}
	if err := binary.Read(br, binary.LittleEndian, &s.Checksum); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	return s, nil
}

// DecodeVerified decodes r with the table described by s and checks the
// result against the stored checksum. Nothing is written to w unless the
// checksum matches.
func DecodeVerified(r io.Reader, w io.Writer, s *Sidecar) error {
	if len(s.Frequencies) == 0 {
		return ErrEmptyInput
	}
	table, err := s.Table()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := Decode(r, &out, table, s.Total()); err != nil {
		return err
	}
	if sum := xxhash.Sum64(out.Bytes()); sum != s.Checksum {
		return fmt.Errorf("%w: got %016x, want %016x", ErrChecksum, sum, s.Checksum)
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
