package huffman

import (
	"sort"
	"strings"
)

// MaxCodeLen is the longest code a Code can hold.
const MaxCodeLen = 64

// Code is a prefix code of Len bits, stored in the low bits of Bits.
// Bit Len-1 is emitted first.
type Code struct {
	Bits uint64
	Len  int
}

// String renders the code as a string of '0' and '1'.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(c.Len)
	for i := c.Len - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Table maps each symbol to its code.
type Table map[byte]Code

// GenerateCodes walks the tree, appending 0 on the left and 1 on the right.
// A tree that is a single leaf gets the one-bit code "0", since an empty
// code could not be packed.
func GenerateCodes(root *Node) (Table, error) {
	if root == nil {
		return nil, ErrEmptyInput
	}
	codes := make(Table)
	if root.IsLeaf() {
		codes[root.Symbol] = Code{Bits: 0, Len: 1}
		return codes, nil
	}
	var walk func(n *Node, bits uint64, length int) error
	walk = func(n *Node, bits uint64, length int) error {
		if n.IsLeaf() {
			codes[n.Symbol] = Code{Bits: bits, Len: length}
			return nil
		}
		if length == MaxCodeLen {
			return ErrCodeTooLong
		}
		if err := walk(n.Left, bits<<1, length+1); err != nil {
			return err
		}
		return walk(n.Right, bits<<1|1, length+1)
	}
	if err := walk(root, 0, 0); err != nil {
		return nil, err
	}
	return codes, nil
}

// TableFor builds the code table for freqs.
func TableFor(freqs Frequencies) (Table, error) {
	root, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	return GenerateCodes(root)
}

// Symbols returns the symbols in the table in ascending order.
func (t Table) Symbols() []byte {
	syms := make([]byte, 0, len(t))
	for b := range t {
		syms = append(syms, b)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// EncodedBits returns the packed size in bits of an input with the given
// frequencies, before padding. Symbols missing from t are ignored.
func (t Table) EncodedBits(freqs Frequencies) uint64 {
	var bits uint64
	for b, f := range freqs {
		bits += f * uint64(t[b].Len)
	}
	return bits
}
