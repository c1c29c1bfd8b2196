package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// trie is a decoding tree flattened into a slice. Index 0 is the root.
type trie struct {
	nodes []trieNode
}

type trieNode struct {
	child  [2]int32 // 0 means none; the root is never a child
	leaf   bool
	symbol byte
}

func newTrie(table Table) (*trie, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no symbols", ErrInvalidTable)
	}
	t := &trie{nodes: make([]trieNode, 1, 2*len(table))}
	for _, sym := range table.Symbols() {
		c := table[sym]
		if c.Len <= 0 || c.Len > MaxCodeLen {
			return nil, fmt.Errorf("%w: symbol 0x%02x has length %d", ErrInvalidTable, sym, c.Len)
		}
		cur := int32(0)
		for i := c.Len - 1; i >= 0; i-- {
			if t.nodes[cur].leaf {
				return nil, fmt.Errorf("%w: code for 0x%02x extends another code", ErrInvalidTable, sym)
			}
			bit := c.Bits >> uint(i) & 1
			next := t.nodes[cur].child[bit]
			if next == 0 {
				t.nodes = append(t.nodes, trieNode{})
				next = int32(len(t.nodes) - 1)
				t.nodes[cur].child[bit] = next
			}
			cur = next
		}
		n := &t.nodes[cur]
		if n.leaf || n.child[0] != 0 || n.child[1] != 0 {
			return nil, fmt.Errorf("%w: code for 0x%02x is a prefix of another code", ErrInvalidTable, sym)
		}
		n.leaf = true
		n.symbol = sym
	}
	return t, nil
}

// Decode reads a packed stream from r and writes exactly n symbols to w,
// using the same table the stream was packed with. Padding after the last
// symbol is ignored.
func Decode(r io.Reader, w io.Writer, table Table, n uint64) error {
	t, err := newTrie(table)
	if err != nil {
		return err
	}
	br := bitio.NewReader(bufio.NewReaderSize(r, chunkSize))
	bw := bufio.NewWriterSize(w, chunkSize)

	for count := uint64(0); count < n; count++ {
		cur := int32(0)
		for !t.nodes[cur].leaf {
			bit, err := br.ReadBool()
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: %d of %d symbols decoded", ErrTruncated, count, n)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			next := t.nodes[cur].child[0]
			if bit {
				next = t.nodes[cur].child[1]
			}
			if next == 0 {
				return fmt.Errorf("%w: after %d symbols", ErrInvalidCode, count)
			}
			cur = next
		}
		if err := bw.WriteByte(t.nodes[cur].symbol); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
