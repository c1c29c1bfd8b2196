package huffman_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/asaecs2/File-Compression-with-Huffman-Encoding/huffman"
)

func TestDecodeTruncatedStream(t *testing.T) {
	data := make([]byte, 2048)
	_, _ = rand.Read(data)
	res, packed, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	truncated := packed[:len(packed)-3]
	var dec bytes.Buffer
	err = huffman.Decode(bytes.NewReader(truncated), &dec, res.Table, uint64(len(data)))
	if !errors.Is(err, huffman.ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDecodeIgnoresPadding(t *testing.T) {
	table, err := huffman.TableFor(huffman.CountBytes([]byte("aab")))
	if err != nil {
		t.Fatal(err)
	}
	// 110 followed by five padding bits
	var dec bytes.Buffer
	if err := huffman.Decode(bytes.NewReader([]byte{0xC0}), &dec, table, 3); err != nil {
		t.Fatal(err)
	}
	if dec.String() != "aab" {
		t.Fatalf("decoded %q, want \"aab\"", dec.String())
	}
}

func TestDecodeInvalidTable(t *testing.T) {
	tests := map[string]huffman.Table{
		"empty":       {},
		"zero length": {'a': {Bits: 0, Len: 0}},
		"prefix":      {'a': {Bits: 0b1, Len: 1}, 'b': {Bits: 0b10, Len: 2}},
		"extends":     {'a': {Bits: 0b10, Len: 2}, 'b': {Bits: 0b1, Len: 1}},
		"duplicate":   {'a': {Bits: 0b01, Len: 2}, 'b': {Bits: 0b01, Len: 2}},
	}
	for name, table := range tests {
		err := huffman.Decode(bytes.NewReader([]byte{0}), &bytes.Buffer{}, table, 1)
		if !errors.Is(err, huffman.ErrInvalidTable) {
			t.Errorf("%s: err = %v, want ErrInvalidTable", name, err)
		}
	}
}

func TestDecodeInvalidCode(t *testing.T) {
	// an incomplete code: "1" leads nowhere
	table := huffman.Table{'a': {Bits: 0b00, Len: 2}, 'b': {Bits: 0b01, Len: 2}}
	err := huffman.Decode(bytes.NewReader([]byte{0x80}), &bytes.Buffer{}, table, 1)
	if !errors.Is(err, huffman.ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}
}
