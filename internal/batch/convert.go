package batch

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/woozymasta/xnb"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Result describes one converted image.
type Result struct {
	Input      string
	Output     string
	Checksum   string
	InputSize  int64
	OutputSize int64
	Width      int
	Height     int
}

// Converter turns image files into XNB textures.
type Converter struct {
	fs   afero.Fs
	opts *xnb.EncodeOptions
	log  *zap.Logger
}

// NewConverter creates a converter. A nil logger discards log output.
func NewConverter(fs afero.Fs, opts *xnb.EncodeOptions, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{fs: fs, opts: opts, log: logger}
}

// ConvertFile decodes the image at in and writes it as XNB to out.
// The texture is written to a temporary file next to out and renamed on
// success; nothing is left at out when conversion fails.
func (c *Converter) ConvertFile(in, out string) (Result, error) {
	result := Result{Input: in, Output: out}

	src, size, err := c.decode(in)
	if err != nil {
		return result, err
	}
	result.InputSize = size
	result.Width, result.Height = src.Width(), src.Height()

	dir := filepath.Dir(out)
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+xid.New().String()+".xnb.tmp")
	written, sum, err := c.encode(tmp, src)
	if err != nil {
		_ = c.fs.Remove(tmp)
		return result, fmt.Errorf("encode %s: %w", in, err)
	}
	if err := c.fs.Rename(tmp, out); err != nil {
		_ = c.fs.Remove(tmp)
		return result, fmt.Errorf("rename %s: %w", out, err)
	}

	result.OutputSize = written
	result.Checksum = sum

	c.log.Debug("converted",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("width", result.Width),
		zap.Int("height", result.Height),
		zap.Int64("bytes", written),
		zap.String("xxhash", sum),
	)

	return result, nil
}

func (c *Converter) decode(path string) (*xnb.PixelBuffer, int64, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	src, err := xnb.PixelBufferFromImage(img)
	if err != nil {
		return nil, 0, fmt.Errorf("convert %s: %w", path, err)
	}

	return src, size, nil
}

// encode writes src to path and returns the written size and its xxhash.
func (c *Converter) encode(path string, src xnb.PixelSource) (int64, string, error) {
	f, err := c.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, "", err
	}

	digest := xxhash.New()
	cw := &countingWriter{w: io.MultiWriter(f, digest)}
	if err := xnb.EncodeBuffered(cw, src, c.opts); err != nil {
		_ = f.Close()
		return 0, "", err
	}
	if err := f.Close(); err != nil {
		return 0, "", err
	}

	return cw.n, hex.EncodeToString(digest.Sum(nil)), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
