package xnb

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"
)

// benchMainFlowImage builds a deterministic image used by IO benchmarks.
func benchMainFlowImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Deterministic pattern with mixed low/high frequencies.
			img.Set(x, y, color.NRGBA{
				R: uint8((x*7 + y*3) & 0xff),        //nolint:gosec // bounded by mask
				G: uint8((x*13 + y*5) & 0xff),       //nolint:gosec // bounded by mask
				B: uint8((x ^ y ^ (x >> 2)) & 0xff), //nolint:gosec // bounded by mask
				A: uint8((x + y) & 0xff),            //nolint:gosec // bounded by mask
			})
		}
	}
	return img
}

func BenchmarkTransformPixels(b *testing.B) {
	img := benchMainFlowImage(1024, 1024)
	dst := make([]byte, len(img.Pix))

	b.Run("swap", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(img.Pix)))
		for b.Loop() {
			TransformPixels(dst, img.Pix, false)
		}
	})

	b.Run("premultiply", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(img.Pix)))
		for b.Loop() {
			TransformPixels(dst, img.Pix, true)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	img := benchMainFlowImage(1024, 1024)
	src, err := PixelBufferFromImage(img)
	if err != nil {
		b.Fatalf("prepare source: %v", err)
	}

	b.Run("uncompressed", func(b *testing.B) {
		opts := &EncodeOptions{PremultiplyAlpha: true}
		b.ReportAllocs()
		b.SetBytes(int64(len(img.Pix)))
		for b.Loop() {
			if err := Encode(io.Discard, src, opts); err != nil {
				b.Fatalf("encode: %v", err)
			}
		}
	})

	b.Run("LZ4", func(b *testing.B) {
		opts := &EncodeOptions{PremultiplyAlpha: true, Compressed: true, Codec: LZ4Codec{}}
		b.ReportAllocs()
		b.SetBytes(int64(len(img.Pix)))
		for b.Loop() {
			if err := Encode(io.Discard, src, opts); err != nil {
				b.Fatalf("encode: %v", err)
			}
		}
	})
}

func BenchmarkMainFlowWriteRead(b *testing.B) {
	img := benchMainFlowImage(1024, 1024)
	path := filepath.Join(b.TempDir(), "main_flow.xnb")

	b.Run("write", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(img.Pix)))
		for b.Loop() {
			if err := Write(img, path); err != nil {
				b.Fatalf("write: %v", err)
			}
		}
	})

	if err := Write(img, path); err != nil {
		b.Fatalf("prepare input file: %v", err)
	}

	b.Run("read", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(img.Pix)))
		for b.Loop() {
			if _, err := Read(path); err != nil {
				b.Fatalf("read: %v", err)
			}
		}
	})
}
