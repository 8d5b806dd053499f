package xnb

import (
	"bytes"
	"fmt"
	"io"
)

// EncodeOptions configures XNB encoding. A nil *EncodeOptions encodes an
// uncompressed Reach container without premultiplying alpha.
type EncodeOptions struct {
	// Codec compresses the object block. Required when Compressed is set.
	Codec Codec
	// Profile sets the HiDef header bit.
	Profile Profile
	// Compressed wraps the object block in a compressed frame.
	Compressed bool
	// PremultiplyAlpha scales color channels by alpha.
	PremultiplyAlpha bool
}

// Encode writes src as an XNB Texture2D container to w.
//
// Validation happens before the first write, so an invalid source or
// missing codec leaves w untouched. A failed write aborts immediately;
// the caller owns w and must discard partial output.
func Encode(w io.Writer, src PixelSource, opts *EncodeOptions) error {
	if opts == nil {
		opts = &EncodeOptions{}
	}

	width, height := src.Width(), src.Height()
	pixLen, err := validateSource(width, height, len(src.Pix()))
	if err != nil {
		return err
	}

	if opts.Compressed {
		return encodeCompressed(w, src, pixLen, opts)
	}

	return encodeUncompressed(w, src, pixLen, opts)
}

// validateSource checks dimensions and buffer length and that every size
// field of the container fits an int32.
func validateSource(width, height, bufLen int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	pixLen, err := checkedArea(width, height)
	if err != nil {
		return 0, fmt.Errorf("%w: %dx%d", err, width, height)
	}
	if bufLen != pixLen {
		return 0, fmt.Errorf("%w: %dx%d needs %d pixel bytes, got %d", ErrInvalidDimensions, width, height, pixLen, bufLen)
	}

	total := HeaderSize + 4 + objectPrefixSize() + pixLen
	if _, err := i32FromInt(total); err != nil {
		return 0, fmt.Errorf("%w: container of %d bytes", ErrSizeOverflow, total)
	}

	return pixLen, nil
}

// appendObjectPrefix appends the type reader table and the Texture2D header
// up to the pixel bytes.
func appendObjectPrefix(buf []byte, width, height, pixLen int) ([]byte, error) {
	w32, err := i32FromInt(width)
	if err != nil {
		return nil, err
	}
	h32, err := i32FromInt(height)
	if err != nil {
		return nil, err
	}
	p32, err := i32FromInt(pixLen)
	if err != nil {
		return nil, err
	}

	if buf, err = appendVarint(buf, 1); err != nil { // type reader count
		return nil, err
	}
	if buf, err = appendString(buf, Texture2DReader); err != nil {
		return nil, err
	}
	buf = appendI32(buf, 0) // reader version
	if buf, err = appendVarint(buf, 0); err != nil { // shared resource count
		return nil, err
	}
	buf = append(buf, 1) // type id, 1-based index into the reader table
	buf = appendU32(buf, SurfaceFormatColor)
	buf = appendI32(buf, w32)
	buf = appendI32(buf, h32)
	buf = appendI32(buf, 1) // mip count
	buf = appendI32(buf, p32)

	return buf, nil
}

func encodeUncompressed(w io.Writer, src PixelSource, pixLen int, opts *EncodeOptions) error {
	prefix, err := appendObjectPrefix(make([]byte, 0, objectPrefixSize()), src.Width(), src.Height(), pixLen)
	if err != nil {
		return err
	}
	total, err := i32FromInt(HeaderSize + 4 + len(prefix) + pixLen)
	if err != nil {
		return err
	}

	head := appendHeader(make([]byte, 0, HeaderSize+4), headerFlags(opts.Profile, 0))
	head = appendI32(head, total)

	if err := writeAll(w, head, "header"); err != nil {
		return err
	}
	if err := writeAll(w, prefix, "texture header"); err != nil {
		return err
	}

	return writeAll(w, ToBGRA(src.Pix(), opts.PremultiplyAlpha), "pixel data")
}

func encodeCompressed(w io.Writer, src PixelSource, pixLen int, opts *EncodeOptions) error {
	if opts.Codec == nil {
		return ErrCompressionUnavailable
	}
	flag, err := frameFlag(opts.Codec)
	if err != nil {
		return err
	}

	payload, err := objectBlock(src, pixLen, opts.PremultiplyAlpha)
	if err != nil {
		return err
	}

	compressed, err := compressPayload(opts.Codec, payload)
	if err != nil {
		return err
	}

	total, err := i32FromInt(compressedFrameOverhead + len(compressed))
	if err != nil {
		return fmt.Errorf("%w: compressed payload of %d bytes", ErrSizeOverflow, len(compressed))
	}
	size, err := i32FromInt(len(payload))
	if err != nil {
		return err
	}

	head := appendHeader(make([]byte, 0, HeaderSize+compressedFrameOverhead), headerFlags(opts.Profile, flag))
	head = appendI32(head, total)
	head = appendI32(head, size)

	if err := writeAll(w, head, "header"); err != nil {
		return err
	}

	return writeAll(w, compressed, "compressed payload")
}

// objectBlock serializes the complete uncompressed object block.
func objectBlock(src PixelSource, pixLen int, premultiply bool) ([]byte, error) {
	prefixLen := objectPrefixSize()
	block, err := appendObjectPrefix(make([]byte, 0, prefixLen+pixLen), src.Width(), src.Height(), pixLen)
	if err != nil {
		return nil, err
	}

	block = block[:prefixLen+pixLen]
	TransformPixels(block[prefixLen:], src.Pix(), premultiply)

	return block, nil
}

// EncodeToBytes encodes src into memory.
func EncodeToBytes(src PixelSource, opts *EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, src, opts); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
