package xnb

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// maxLZ4Expansion bounds how many output bytes one byte of an LZ4 block can
// produce.
const maxLZ4Expansion = 255

// LZ4Codec compresses object blocks as a single raw LZ4 block, the
// compressed container variant understood by MonoGame (header flag 0x40).
type LZ4Codec struct {
	// Level selects high compression when non-zero (lz4.Level1..lz4.Level9).
	Level lz4.CompressionLevel
}

// FrameFlag implements FrameFlagger.
func (LZ4Codec) FrameFlag() byte {
	return FlagCompressedLZ4
}

// Compress implements Codec.
func (c LZ4Codec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var (
		n   int
		err error
	)
	if c.Level == lz4.Fast {
		n, err = lz4.CompressBlock(src, dst, nil)
	} else {
		n, err = lz4.CompressBlockHC(src, dst, c.Level, nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("lz4: %d bytes are not compressible", len(src))
	}

	return dst[:n], nil
}

// Decompress implements Decompressor.
func (LZ4Codec) Decompress(src []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("lz4: negative size %d", size)
	}
	if size/maxLZ4Expansion > len(src) {
		return nil, fmt.Errorf("lz4: %d bytes cannot inflate to %d", len(src), size)
	}

	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4: expected %d bytes, got %d", size, n)
	}

	return dst, nil
}
