package huffman_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"testing"

	"github.com/asaecs2/File-Compression-with-Huffman-Encoding/huffman"
)

func roundtrip(t *testing.T, data []byte) []byte {
	t.Helper()
	res, packed, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var dec bytes.Buffer
	if err := huffman.Decode(bytes.NewReader(packed), &dec, res.Table, res.Frequencies.Total()); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(dec.Bytes(), data) {
		t.Fatalf("roundtrip mismatch: got %d bytes, want %d", dec.Len(), len(data))
	}
	return packed
}

func TestRoundtripRandom10KB(t *testing.T) {
	data := make([]byte, 10*1024)
	_, _ = rand.Read(data)
	roundtrip(t, data)
}

func TestRoundtripAllBytesOnce(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	packed := roundtrip(t, data)
	// 256 equal weights give a complete tree of depth 8
	if len(packed) != 256 {
		t.Fatalf("packed length %d, want 256", len(packed))
	}
}

func TestRoundtripSkewed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte(min(rng.ExpFloat64()*4, 255))
	}
	packed := roundtrip(t, data)
	if len(packed) >= len(data) {
		t.Fatalf("skewed input did not shrink: %d >= %d", len(packed), len(data))
	}
}

func TestSmallInputs(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		data := make([]byte, n)
		_, _ = rand.Read(data)
		roundtrip(t, data)
	}
}

func TestSingleSymbolInput(t *testing.T) {
	data := bytes.Repeat([]byte{'A'}, 10)
	res, packed, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(res.Table) != 1 {
		t.Fatalf("table has %d entries, want 1", len(res.Table))
	}
	if c := res.Table['A']; c != (huffman.Code{Bits: 0, Len: 1}) {
		t.Fatalf("code for 'A' = %q, want \"0\"", c)
	}
	if !bytes.Equal(packed, []byte{0x00, 0x00}) {
		t.Fatalf("packed = % x, want 00 00", packed)
	}
	if res.EncodedBits != 10 || res.OutputBytes != 2 {
		t.Fatalf("EncodedBits=%d OutputBytes=%d, want 10 and 2", res.EncodedBits, res.OutputBytes)
	}
	roundtrip(t, data)
}

func TestSingleByteRepeated(t *testing.T) {
	data := bytes.Repeat([]byte{'A'}, 1024*1024)
	packed := roundtrip(t, data)
	if len(packed) != 128*1024 {
		t.Fatalf("packed length %d, want %d", len(packed), 128*1024)
	}
}

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"aab", []byte{0xC0}},
		{"abracadabra", []byte{0x69, 0xCF, 0x68}},
		{"mississippi", []byte{0x99, 0x9D, 0xB8}},
		{"hello world", []byte{0xFE, 0xA3, 0x18, 0xAD}},
	}
	for _, tt := range tests {
		_, packed, err := huffman.EncodeBytes([]byte(tt.in))
		if err != nil {
			t.Fatalf("%q: Encode failed: %v", tt.in, err)
		}
		if !bytes.Equal(packed, tt.want) {
			t.Errorf("%q: packed = % x, want % x", tt.in, packed, tt.want)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	var out bytes.Buffer
	_, err := huffman.Encode(bytes.NewReader(nil), &out)
	if !errors.Is(err, huffman.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if out.Len() != 0 {
		t.Fatalf("wrote %d bytes for empty input", out.Len())
	}

	_, err = huffman.Encode(&chunkReader{}, &out)
	if !errors.Is(err, huffman.ErrEmptyInput) {
		t.Fatalf("streaming: err = %v, want ErrEmptyInput", err)
	}
}

func TestDeterministic(t *testing.T) {
	data := []byte("deterministic-test-abc123")
	_, a, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode a failed: %v", err)
	}
	_, b, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode b failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("encodings differ on same input")
	}
}

func TestResultAccounting(t *testing.T) {
	data := make([]byte, 123)
	_, _ = rand.Read(data)
	res, packed, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if res.InputBytes != int64(len(data)) {
		t.Fatalf("InputBytes %d != %d", res.InputBytes, len(data))
	}
	if uint64(res.EncodedBits) != res.Table.EncodedBits(res.Frequencies) {
		t.Fatalf("EncodedBits %d != table estimate %d", res.EncodedBits, res.Table.EncodedBits(res.Frequencies))
	}
	if want := (res.EncodedBits + 7) / 8; res.OutputBytes != want || int64(len(packed)) != want {
		t.Fatalf("OutputBytes %d, len %d, want %d", res.OutputBytes, len(packed), want)
	}
}

func TestStreamingSmallBuffer(t *testing.T) {
	data := make([]byte, 1024*16)
	_, _ = rand.Read(data)
	var enc bytes.Buffer
	res, err := huffman.Encode(&chunkReader{data: data, chunkSize: 64}, &enc)
	if err != nil {
		t.Fatalf("Encode streaming failed: %v", err)
	}
	_, want, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(enc.Bytes(), want) {
		t.Fatalf("streaming and in-memory encodings differ")
	}
	var dec bytes.Buffer
	if err := huffman.Decode(&enc, &dec, res.Table, uint64(len(data))); err != nil {
		t.Fatalf("Decode streaming failed: %v", err)
	}
	if !bytes.Equal(dec.Bytes(), data) {
		t.Fatalf("streaming roundtrip mismatch")
	}
}

func TestEncodeFromOffset(t *testing.T) {
	data := []byte("xxxxabracadabra")
	r := bytes.NewReader(data)
	if _, err := r.Seek(4, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	res, err := huffman.Encode(r, &out)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if res.InputBytes != 11 || !bytes.Equal(out.Bytes(), []byte{0x69, 0xCF, 0x68}) {
		t.Fatalf("got %d input bytes, packed % x", res.InputBytes, out.Bytes())
	}
}

func TestFailingReader(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	if _, err := huffman.Encode(&failReader{err: boom}, &out); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestFailingWriter(t *testing.T) {
	data := make([]byte, 256*1024)
	_, _ = rand.Read(data)
	boom := errors.New("disk full")
	if _, err := huffman.Encode(bytes.NewReader(data), &failWriter{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestStreamingLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large streaming test")
	}
	size := int64(100 * 1024 * 1024)
	cw := &countingWriter{}
	res, err := huffman.Encode(&largePatternReader{size: size}, cw)
	if err != nil {
		t.Fatalf("Encode large stream failed: %v", err)
	}
	// every byte value is equally frequent, so every code is 8 bits
	if cw.n != size || res.OutputBytes != size {
		t.Fatalf("output %d bytes, want %d", cw.n, size)
	}
}

type chunkReader struct {
	data      []byte
	pos       int
	chunkSize int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.chunkSize
	if remaining := len(c.data) - c.pos; remaining < n {
		n = remaining
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

type failReader struct {
	err error
}

func (f *failReader) Read(p []byte) (n int, err error) {
	return 0, f.err
}

type failWriter struct {
	err error
}

func (f *failWriter) Write(p []byte) (n int, err error) {
	return 0, f.err
}

// largePatternReader yields size bytes cycling through 0..255.
type largePatternReader struct {
	size int64
	read int64
}

func (r *largePatternReader) Read(p []byte) (n int, err error) {
	if r.read >= r.size {
		return 0, io.EOF
	}
	remaining := r.size - r.read
	if int64(len(p)) > remaining {
		n = int(remaining)
	} else {
		n = len(p)
	}
	for i := 0; i < n; i++ {
		p[i] = byte((r.read + int64(i)) & 0xFF)
	}
	r.read += int64(n)
	return n, nil
}

type countingWriter struct {
	n int64
}

func (cw *countingWriter) Write(p []byte) (n int, err error) {
	cw.n += int64(len(p))
	return len(p), nil
}

func TestEncodeFromPipe(t *testing.T) {
	data := []byte("a pipe cannot seek, so the first pass spools it")
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer pr.Close()
	go func() {
		pw.Write(data)
		pw.Close()
	}()

	var out bytes.Buffer
	res, err := huffman.Encode(pr, &out)
	if err != nil {
		t.Fatalf("Encode from pipe failed: %v", err)
	}
	_, want, err := huffman.EncodeBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), want) || res.InputBytes != int64(len(data)) {
		t.Fatalf("pipe encoding % x (%d bytes in), want % x", out.Bytes(), res.InputBytes, want)
	}
}

func TestEncodeIgnoresGrowthBetweenPasses(t *testing.T) {
	r := &growingReader{Reader: bytes.NewReader([]byte("abracadabra")), data: []byte("abracadabra"), extra: []byte("zzz")}
	var out bytes.Buffer
	res, err := huffman.Encode(r, &out)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !r.grown {
		t.Fatalf("input was never rewound")
	}
	if res.InputBytes != 11 || !bytes.Equal(out.Bytes(), []byte{0x69, 0xCF, 0x68}) {
		t.Fatalf("got %d input bytes, packed % x", res.InputBytes, out.Bytes())
	}
}

// growingReader gains extra bytes the first time it is rewound to the start,
// like a file appended to while it is being encoded.
type growingReader struct {
	*bytes.Reader
	data  []byte
	extra []byte
	grown bool
}

func (g *growingReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekStart && !g.grown {
		g.grown = true
		g.Reader = bytes.NewReader(append(append([]byte(nil), g.data...), g.extra...))
	}
	return g.Reader.Seek(offset, whence)
}
