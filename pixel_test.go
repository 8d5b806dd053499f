package xnb

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestTransformPixelsTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		src         []byte
		want        []byte
		premultiply bool
	}{
		{name: "opaque-white", src: []byte{255, 255, 255, 255}, want: []byte{255, 255, 255, 255}, premultiply: true},
		{name: "half-alpha", src: []byte{200, 100, 50, 128}, want: []byte{25, 50, 100, 128}, premultiply: true},
		{name: "transparent", src: []byte{12, 34, 56, 0}, want: []byte{0, 0, 0, 0}, premultiply: true},
		{name: "opaque-swap", src: []byte{1, 2, 3, 255}, want: []byte{3, 2, 1, 255}, premultiply: true},
		{name: "alpha-one", src: []byte{255, 254, 128, 1}, want: []byte{0, 0, 1, 1}, premultiply: true},
		{name: "alpha-254", src: []byte{255, 100, 1, 254}, want: []byte{0, 99, 254, 254}, premultiply: true},
		{name: "swap-only-transparent", src: []byte{12, 34, 56, 0}, want: []byte{56, 34, 12, 0}},
		{name: "swap-only-half", src: []byte{200, 100, 50, 128}, want: []byte{50, 100, 200, 128}},
		{
			name:        "two-pixels",
			src:         []byte{10, 20, 30, 255, 40, 50, 60, 51},
			want:        []byte{30, 20, 10, 255, 12, 10, 8, 51},
			premultiply: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ToBGRA(tc.src, tc.premultiply)
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("ToBGRA(%v, %v) = %v, want %v", tc.src, tc.premultiply, got, tc.want)
			}
		})
	}
}

func TestTransformPixelsSwapIgnoresAlpha(t *testing.T) {
	t.Parallel()

	src := make([]byte, 0, 256*4)
	for a := range 256 {
		src = append(src, byte(a*3), byte(a*5), byte(a*7), byte(a))
	}

	got := ToBGRA(src, false)
	for i := 0; i < len(src); i += 4 {
		if got[i] != src[i+2] || got[i+1] != src[i+1] || got[i+2] != src[i] || got[i+3] != src[i+3] {
			t.Fatalf("pixel %d: got %v from %v", i/4, got[i:i+4], src[i:i+4])
		}
	}
}

func TestTransformPixelsPremultiplyBounds(t *testing.T) {
	t.Parallel()

	for a := range 256 {
		src := []byte{255, 128, 7, byte(a)}
		got := ToBGRA(src, true)
		if got[3] != byte(a) {
			t.Fatalf("alpha %d changed to %d", a, got[3])
		}
		wantB := byte(7 * a / 255)
		wantG := byte(128 * a / 255)
		wantR := byte(255 * a / 255)
		if got[0] != wantB || got[1] != wantG || got[2] != wantR {
			t.Fatalf("alpha %d: got %v, want [%d %d %d]", a, got[:3], wantB, wantG, wantR)
		}
	}
}

func TestTransformPixelsInPlace(t *testing.T) {
	t.Parallel()

	pix := []byte{200, 100, 50, 128}
	TransformPixels(pix, pix, true)
	if !bytes.Equal(pix, []byte{25, 50, 100, 128}) {
		t.Fatalf("in-place transform = %v", pix)
	}
}

func TestPixelBufferFromImage(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 90), B: 7, A: 255})
		}
	}

	src, err := PixelBufferFromImage(img)
	if err != nil {
		t.Fatalf("PixelBufferFromImage: %v", err)
	}
	if src.Width() != 3 || src.Height() != 2 {
		t.Fatalf("size %dx%d", src.Width(), src.Height())
	}
	if !bytes.Equal(src.Pix(), img.Pix) {
		t.Fatalf("pixels differ")
	}
}

func TestPixelBufferFromImageStraightAlpha(t *testing.T) {
	t.Parallel()

	translucent := color.NRGBA{R: 200, G: 100, B: 50, A: 128}

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.NRGBA{A: 0},
		translucent,
	})
	paletted.SetColorIndex(0, 0, 1)
	paletted.SetColorIndex(1, 0, 1)

	wide := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	wide.SetNRGBA64(0, 0, color.NRGBA64{R: 200 * 0x101, G: 100 * 0x101, B: 50 * 0x101, A: 128 * 0x101})
	wide.SetNRGBA64(1, 0, color.NRGBA64{R: 200 * 0x101, G: 100 * 0x101, B: 50 * 0x101, A: 128 * 0x101})

	opaque := image.NewRGBA(image.Rect(0, 0, 2, 1))
	opaque.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	opaque.SetRGBA(1, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	// Premultiplied storage loses precision; 100*255/128 truncates to 199.
	premul := image.NewRGBA(image.Rect(0, 0, 2, 1))
	premul.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 25, A: 128})
	premul.SetRGBA(1, 0, color.RGBA{R: 100, G: 50, B: 25, A: 128})

	offset := image.NewNRGBA(image.Rect(0, 0, 4, 3)).SubImage(image.Rect(1, 1, 3, 2)).(*image.NRGBA)
	offset.SetNRGBA(1, 1, translucent)
	offset.SetNRGBA(2, 1, translucent)

	tests := []struct {
		img  image.Image
		name string
		want []byte
	}{
		{name: "paletted", img: paletted, want: []byte{200, 100, 50, 128}},
		{name: "nrgba64", img: wide, want: []byte{200, 100, 50, 128}},
		{name: "rgba-opaque", img: opaque, want: []byte{200, 100, 50, 255}},
		{name: "rgba-translucent", img: premul, want: []byte{199, 99, 49, 128}},
		{name: "nrgba-sub-image", img: offset, want: []byte{200, 100, 50, 128}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src, err := PixelBufferFromImage(tc.img)
			if err != nil {
				t.Fatalf("PixelBufferFromImage: %v", err)
			}
			if src.Width() != 2 || src.Height() != 1 || len(src.Pix()) != 8 {
				t.Fatalf("buffer %dx%d, %d bytes", src.Width(), src.Height(), len(src.Pix()))
			}
			want := append(append([]byte(nil), tc.want...), tc.want...)
			if !bytes.Equal(src.Pix(), want) {
				t.Fatalf("pixels = %v, want %v", src.Pix(), want)
			}
		})
	}
}

func TestEncodeImagePremultipliesOnce(t *testing.T) {
	t.Parallel()

	img := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.NRGBA{R: 200, G: 100, B: 50, A: 128}})

	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, &EncodeOptions{PremultiplyAlpha: true}); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	if got := buf.Bytes()[buf.Len()-4:]; !bytes.Equal(got, []byte{25, 50, 100, 128}) {
		t.Fatalf("premultiplied pixel = %v, want [25 50 100 128]", got)
	}

	buf.Reset()
	if err := EncodeImage(&buf, img, &EncodeOptions{}); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	if got := buf.Bytes()[buf.Len()-4:]; !bytes.Equal(got, []byte{50, 100, 200, 128}) {
		t.Fatalf("straight pixel = %v, want [50 100 200 128]", got)
	}
}

func TestPixelBufferFromEmptyImage(t *testing.T) {
	t.Parallel()

	if _, err := PixelBufferFromImage(image.NewNRGBA(image.Rect(0, 0, 0, 4))); err == nil {
		t.Fatal("expected error for empty image")
	}
}
