package xnb

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// Write writes img as an uncompressed Reach XNB file with premultiplied alpha.
func Write(img image.Image, path string) error {
	return WriteWithOptions(img, path, &EncodeOptions{PremultiplyAlpha: true})
}

// WriteWithOptions writes img as an XNB file with the given options.
func WriteWithOptions(img image.Image, path string, opts *EncodeOptions) error {
	src, err := PixelBufferFromImage(img)
	if err != nil {
		return err
	}

	return WriteFile(path, src, opts)
}

// WriteFile encodes src into the file at path. The texture is written to a
// temporary file in the same directory and renamed over path on success, so
// a failed encode leaves an existing file at path untouched.
func WriteFile(path string, src PixelSource, opts *EncodeOptions) error {
	// Fail before touching the filesystem.
	if _, err := validateSource(src.Width(), src.Height(), len(src.Pix())); err != nil {
		return err
	}
	if opts != nil && opts.Compressed && opts.Codec == nil {
		return ErrCompressionUnavailable
	}

	tmp := filepath.Join(filepath.Dir(path), "."+xid.New().String()+".xnb.tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}

	if err := EncodeBuffered(f, src, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %q: %v", ErrCloseFile, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %q: %v", ErrRenameFile, path, err)
	}

	return nil
}

// EncodeBuffered encodes src to w through a buffered writer, for sinks such
// as files where many small writes are expensive.
func EncodeBuffered(w io.Writer, src PixelSource, opts *EncodeOptions) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	if err := Encode(bw, src, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrSinkWrite, err)
	}

	return nil
}

// EncodeImage converts img and encodes it to w.
func EncodeImage(w io.Writer, img image.Image, opts *EncodeOptions) error {
	src, err := PixelBufferFromImage(img)
	if err != nil {
		return err
	}

	return Encode(w, src, opts)
}
