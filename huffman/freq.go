package huffman

import (
	"fmt"
	"io"
	"sort"
)

const chunkSize = 64 * 1024

// Frequencies maps each observed byte to its occurrence count.
// Unobserved bytes have no entry.
type Frequencies map[byte]uint64

// CountBytes counts the bytes of data.
func CountBytes(data []byte) Frequencies {
	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}
	return fromArray(&counts)
}

// Count reads r to EOF and returns the per-byte counts and the number of
// bytes read.
func Count(r io.Reader) (Frequencies, int64, error) {
	var counts [256]uint64
	n, err := countInto(r, &counts, nil)
	if err != nil {
		return nil, n, err
	}
	return fromArray(&counts), n, nil
}

// countInto tallies r into counts, copying everything it reads to spool when
// spool is non-nil.
func countInto(r io.Reader, counts *[256]uint64, spool io.Writer) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, b := range buf[:n] {
				counts[b]++
			}
			if spool != nil {
				if _, wErr := spool.Write(buf[:n]); wErr != nil {
					return total, fmt.Errorf("spool input: %w", wErr)
				}
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("read input: %w", err)
		}
	}
}

func fromArray(counts *[256]uint64) Frequencies {
	freqs := make(Frequencies)
	for i, c := range counts {
		if c > 0 {
			freqs[byte(i)] = c
		}
	}
	return freqs
}

// Total returns the sum of all counts, which equals the input length.
func (f Frequencies) Total() uint64 {
	var sum uint64
	for _, c := range f {
		sum += c
	}
	return sum
}

// Symbols returns the observed bytes in ascending order.
func (f Frequencies) Symbols() []byte {
	syms := make([]byte, 0, len(f))
	for b := range f {
		syms = append(syms, b)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
