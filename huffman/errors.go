package huffman

import "errors"

var (
	// ErrEmptyInput is returned when there are no bytes to build a code for.
	ErrEmptyInput = errors.New("huffman: empty input")
	// ErrUnknownSymbol is returned when the encoder meets a byte that has no
	// code. It means the table was not built from the same input.
	ErrUnknownSymbol = errors.New("huffman: symbol not in code table")
	// ErrCodeTooLong is returned when a tree is deeper than MaxCodeLen.
	ErrCodeTooLong = errors.New("huffman: code longer than 64 bits")

	// ErrInvalidTable is returned for a table with empty, overlong or
	// non-prefix-free codes.
	ErrInvalidTable = errors.New("huffman: invalid code table")
	// ErrInvalidCode is returned when the bitstream follows no code.
	ErrInvalidCode = errors.New("huffman: invalid code in bitstream")
	// ErrTruncated is returned when the bitstream ends before every symbol
	// is decoded.
	ErrTruncated = errors.New("huffman: bitstream truncated")
	// ErrInvalidHeader is returned for a malformed sidecar.
	ErrInvalidHeader = errors.New("huffman: invalid sidecar header")
	// ErrChecksum is returned when decoded data does not match the sidecar.
	ErrChecksum = errors.New("huffman: checksum mismatch")
)
