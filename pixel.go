package xnb

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PixelSource supplies an RGBA8 bitmap. Pix must hold 4*Width*Height bytes,
// row-major without padding, and is only read by the encoder.
type PixelSource interface {
	Width() int
	Height() int
	Pix() []byte
}

// PixelBuffer is a plain RGBA8 bitmap implementing PixelSource.
type PixelBuffer struct {
	pix    []byte
	width  int
	height int
}

// NewPixelBuffer wraps pix without copying it.
func NewPixelBuffer(width, height int, pix []byte) *PixelBuffer {
	return &PixelBuffer{width: width, height: height, pix: pix}
}

// PixelBufferFromImage converts img into a non-premultiplied RGBA8 bitmap.
// Premultiplied color models such as *image.RGBA are un-premultiplied, so
// the result carries straight alpha whatever the source model.
func PixelBufferFromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}

	// Tightly packed NRGBA images at the origin are already in the right layout.
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && nrgba.Stride == 4*bounds.Dx() {
		return NewPixelBuffer(bounds.Dx(), bounds.Dy(), nrgba.Pix[:pixelDataLength(bounds.Dx(), bounds.Dy())]), nil
	}

	return NewPixelBuffer(bounds.Dx(), bounds.Dy(), imaging.Clone(img).Pix), nil
}

// Width implements PixelSource.
func (b *PixelBuffer) Width() int { return b.width }

// Height implements PixelSource.
func (b *PixelBuffer) Height() int { return b.height }

// Pix implements PixelSource.
func (b *PixelBuffer) Pix() []byte { return b.pix }

// ToBGRA returns src converted to BGRA, optionally premultiplying alpha.
func ToBGRA(src []byte, premultiply bool) []byte {
	dst := make([]byte, len(src))
	TransformPixels(dst, src, premultiply)

	return dst
}

// TransformPixels writes the BGRA form of the RGBA pixels in src into dst.
// Red and blue are always swapped. With premultiply set, fully transparent
// pixels get zero color and partially transparent pixels have each color
// channel scaled by alpha/255 with truncating division. Alpha is kept as is.
// dst and src may be the same slice; a trailing partial pixel is ignored.
func TransformPixels(dst, src []byte, premultiply bool) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if premultiply && a != 0xff {
			if a == 0 {
				b, g, r = 0, 0, 0
			} else {
				b = premultiplyChannel(b, a)
				g = premultiplyChannel(g, a)
				r = premultiplyChannel(r, a)
			}
		}
		dst[i], dst[i+1], dst[i+2], dst[i+3] = b, g, r, a
	}
}

func premultiplyChannel(c, a byte) byte {
	return byte(uint16(c) * uint16(a) / 0xff)
}
