package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Pack writes the concatenated codes of every byte of r to w, padded with
// zero bits to a byte boundary, and returns the number of code bits written.
// A byte with no entry in table fails with ErrUnknownSymbol.
func Pack(w io.Writer, r io.Reader, table Table) (int64, error) {
	var lookup [256]Code
	for b, c := range table {
		if c.Len <= 0 || c.Len > MaxCodeLen {
			return 0, fmt.Errorf("%w: symbol 0x%02x has length %d", ErrInvalidTable, b, c.Len)
		}
		lookup[b] = c
	}

	bw := NewBitWriter(w)
	buf := make([]byte, chunkSize)
	var offset int64
	for {
		n, err := r.Read(buf)
		for i, b := range buf[:n] {
			c := lookup[b]
			if c.Len == 0 {
				return bw.Bits(), fmt.Errorf("%w: byte 0x%02x at offset %d", ErrUnknownSymbol, b, offset+int64(i))
			}
			if wErr := bw.WriteCode(c); wErr != nil {
				return bw.Bits(), fmt.Errorf("write output: %w", wErr)
			}
		}
		offset += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return bw.Bits(), fmt.Errorf("read input: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return bw.Bits(), fmt.Errorf("write output: %w", err)
	}
	return bw.Bits(), nil
}

// PackBytes is Pack over an in-memory input.
func PackBytes(data []byte, table Table) ([]byte, error) {
	var out bytes.Buffer
	if _, err := Pack(&out, bytes.NewReader(data), table); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
