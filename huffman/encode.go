package huffman

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Result describes one encoding. Table is the code the packed bytes were
// written with; the packed stream carries no copy of it.
type Result struct {
	Frequencies Frequencies
	Table       Table
	// xxhash64 of the input
	Checksum    uint64
	InputBytes  int64
	EncodedBits int64
	OutputBytes int64
}

// Ratio returns output size over input size.
func (r *Result) Ratio() float64 {
	if r.InputBytes == 0 {
		return 0
	}
	return float64(r.OutputBytes) / float64(r.InputBytes)
}

// EncodeBytes encodes data and returns the code table and the packed bytes.
func EncodeBytes(data []byte) (*Result, []byte, error) {
	var out bytes.Buffer
	res, err := Encode(bytes.NewReader(data), &out)
	if err != nil {
		return nil, nil, err
	}
	return res, out.Bytes(), nil
}

// Encode reads r twice: once to count, once to emit. A reader that cannot
// seek, such as a pipe, is spooled to a temporary file during the first pass.
// The second pass stops after the bytes the first pass counted.
// Empty input returns ErrEmptyInput and writes nothing.
func Encode(r io.Reader, w io.Writer) (*Result, error) {
	var counts [256]uint64
	var second io.Reader
	digest := xxhash.New()

	rs, seekable := r.(io.ReadSeeker)
	var start int64
	if seekable {
		var err error
		if start, err = rs.Seek(0, io.SeekCurrent); err != nil {
			seekable = false
		}
	}

	if seekable {
		n, err := countInto(rs, &counts, digest)
		if err != nil {
			return nil, err
		}
		if _, err := rs.Seek(start, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind input: %w", err)
		}
		second = io.LimitReader(rs, n)
	} else {
		tmp, err := os.CreateTemp("", "huff_encode_*")
		if err != nil {
			return nil, fmt.Errorf("create spool: %w", err)
		}
		defer os.Remove(tmp.Name())
		defer tmp.Close()

		if _, err := countInto(r, &counts, io.MultiWriter(tmp, digest)); err != nil {
			return nil, err
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind spool: %w", err)
		}
		second = tmp
	}

	freqs := fromArray(&counts)
	table, err := TableFor(freqs)
	if err != nil {
		return nil, err
	}

	cw := &countingWriter{w: w}
	bits, err := Pack(cw, second, table)
	if err != nil {
		return nil, err
	}
	return &Result{
		Frequencies: freqs,
		Table:       table,
		Checksum:    digest.Sum64(),
		InputBytes:  int64(freqs.Total()),
		EncodedBits: bits,
		OutputBytes: cw.n,
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
