package xnb

import "fmt"

// Codec compresses a serialized object block for a compressed container.
// Output must be deterministic for a given input; its length is trusted.
type Codec interface {
	Compress(src []byte) ([]byte, error)
}

// CodecFunc adapts a function to the Codec interface.
type CodecFunc func(src []byte) ([]byte, error)

// Compress implements Codec.
func (f CodecFunc) Compress(src []byte) ([]byte, error) {
	return f(src)
}

// FrameFlagger is implemented by codecs that are not LZX and need a
// different compressed flag in the header.
type FrameFlagger interface {
	FrameFlag() byte
}

// Decompressor inflates a compressed object block of a known size. size is
// taken from the file unchecked; implementations bound it against len(src)
// before allocating.
type Decompressor interface {
	Decompress(src []byte, size int) ([]byte, error)
}

// DecompressorFunc adapts a function to the Decompressor interface.
type DecompressorFunc func(src []byte, size int) ([]byte, error)

// Decompress implements Decompressor.
func (f DecompressorFunc) Decompress(src []byte, size int) ([]byte, error) {
	return f(src, size)
}

// frameFlag returns the header flag the codec frames its output with.
func frameFlag(c Codec) (byte, error) {
	ff, ok := c.(FrameFlagger)
	if !ok {
		return FlagCompressedLZX, nil
	}

	flag := ff.FrameFlag()
	if flag != FlagCompressedLZX && flag != FlagCompressedLZ4 {
		return 0, fmt.Errorf("%w: 0x%02x", ErrInvalidFrameFlag, flag)
	}

	return flag, nil
}

// compressPayload runs the codec once and checks the contract of its output.
func compressPayload(c Codec, payload []byte) ([]byte, error) {
	out, err := c.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompressionFailure, err)
	}
	if len(out) == 0 && len(payload) > 0 {
		return nil, fmt.Errorf("%w: empty output for %d input bytes", ErrCompressionFailure, len(payload))
	}

	return out, nil
}
