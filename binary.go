package xnb

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// appendVarint appends n as a 7-bit encoded integer: seven bits per byte,
// least significant group first, high bit set on every byte but the last.
func appendVarint(buf []byte, n int) ([]byte, error) {
	if n < 0 {
		return buf, fmt.Errorf("%w: negative 7-bit encoded integer %d", ErrSizeOverflow, n)
	}

	return binary.AppendUvarint(buf, uint64(n)), nil
}

// varintLen returns the encoded size of a non-negative 7-bit encoded integer.
func varintLen(n int) int {
	size := 1
	for n >= 0x80 {
		n >>= 7
		size++
	}

	return size
}

// appendString appends s prefixed with its UTF-8 byte length.
func appendString(buf []byte, s string) ([]byte, error) {
	buf, err := appendVarint(buf, len(s))
	if err != nil {
		return buf, err
	}

	return append(buf, s...), nil
}

// stringLen returns the encoded size of a length prefixed string.
func stringLen(s string) int {
	return varintLen(len(s)) + len(s)
}

func appendU32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

func appendI32(buf []byte, v int32) []byte {
	// #nosec G115 -- two's complement reinterpretation.
	return appendU32(buf, uint32(v))
}

// byteReader reads the primitive types of an object block.
type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.off
}

func (r *byteReader) next(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedPayload, n, r.off, r.remaining())
	}
	out := r.data[r.off : r.off+n]
	r.off += n

	return out, nil
}

func (r *byteReader) u8() (byte, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *byteReader) u32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) i32() (int32, error) {
	v, err := r.u32()
	// #nosec G115 -- two's complement reinterpretation.
	return int32(v), err
}

// varint reads a 7-bit encoded integer limited to the int32 range.
func (r *byteReader) varint() (int, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	switch {
	case n == 0:
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncatedPayload, r.off)
	case n < 0 || v > uint64(maxInt32):
		return 0, fmt.Errorf("%w: at offset %d", ErrInvalidVarint, r.off)
	}
	r.off += n

	return int(v), nil
}

func (r *byteReader) str() (string, error) {
	n, err := r.varint()
	if err != nil {
		return "", err
	}
	b, err := r.next(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid UTF-8 string", ErrPayloadRead)
	}

	return string(b), nil
}

// writeAll writes p to w, naming the field in the returned error.
func writeAll(w io.Writer, p []byte, field string) error {
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSinkWrite, field, err)
	}

	return nil
}
