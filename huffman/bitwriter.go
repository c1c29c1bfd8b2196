package huffman

import (
	"bufio"
	"io"
)

// BitWriter packs bits most-significant first into bytes. The accumulator
// holds one byte; cursor is the bit position the next bit goes to, counting
// down from 7. Output is written strictly forward.
type BitWriter struct {
	w      *bufio.Writer
	acc    byte
	cursor int
	bits   int64
	err    error
}

// NewBitWriter returns a BitWriter writing to w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bufio.NewWriterSize(w, chunkSize), cursor: 7}
}

// WriteBit writes a single bit.
func (bw *BitWriter) WriteBit(bit bool) error {
	if bw.err != nil {
		return bw.err
	}
	if bit {
		bw.acc |= 1 << uint(bw.cursor)
	}
	bw.bits++
	if bw.cursor == 0 {
		return bw.flushByte()
	}
	bw.cursor--
	return nil
}

// WriteCode writes the bits of c, first bit first.
func (bw *BitWriter) WriteCode(c Code) error {
	n := c.Len
	for n > 0 {
		if bw.err != nil {
			return bw.err
		}
		free := bw.cursor + 1
		k := free
		if n < k {
			k = n
		}
		chunk := byte(c.Bits>>uint(n-k)) & byte(1<<uint(k)-1)
		bw.acc |= chunk << uint(free-k)
		bw.cursor -= k
		bw.bits += int64(k)
		n -= k
		if bw.cursor < 0 {
			if err := bw.flushByte(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (bw *BitWriter) flushByte() error {
	if err := bw.w.WriteByte(bw.acc); err != nil {
		bw.err = err
		return err
	}
	bw.acc = 0
	bw.cursor = 7
	return nil
}

// Bits returns the number of bits written so far, excluding padding.
func (bw *BitWriter) Bits() int64 {
	return bw.bits
}

// Flush writes any partial byte with its unused low bits zero, then flushes
// the underlying buffer. Further writes start on a fresh byte.
func (bw *BitWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	if bw.cursor != 7 {
		if err := bw.flushByte(); err != nil {
			return err
		}
	}
	if err := bw.w.Flush(); err != nil {
		bw.err = err
		return err
	}
	return nil
}
