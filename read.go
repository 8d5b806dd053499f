package xnb

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/woozymasta/bcn"
)

// Header is the fixed container preamble plus the first size field.
type Header struct {
	// Platform is the target platform byte ('w', 'm', 'x', ...).
	Platform byte
	// Version is the format version.
	Version byte
	// Flags holds the profile and compression bits.
	Flags byte
	// FileSize is the first declared size field. For uncompressed files it
	// is the whole file size, for compressed files the size of the frame.
	FileSize int32
}

// Profile returns the profile encoded in the flags.
func (h Header) Profile() Profile {
	if h.Flags&FlagHiDef != 0 {
		return ProfileHiDef
	}

	return ProfileReach
}

// Compressed reports whether the payload is compressed.
func (h Header) Compressed() bool {
	return h.Flags&compressedFlags != 0
}

// Texture is a decoded Texture2D object.
type Texture struct {
	// TypeReader is the type reader name from the container.
	TypeReader string
	// Pix holds the pixels exactly as stored (BGRA, possibly premultiplied).
	Pix []byte
	// Header is the container header.
	Header Header
	// ReaderVersion is the type reader version.
	ReaderVersion int32
	// SurfaceFormat is the stored surface format.
	SurfaceFormat uint32
	// Width and Height are the texture dimensions.
	Width  int
	Height int
	// MipCount is the declared mip count. Only level 0 is kept.
	MipCount int
	// PayloadSize is the size of the uncompressed object block.
	PayloadSize int
}

// Image returns the texture as *image.NRGBA. Premultiplied pixels are
// returned as stored.
func (t *Texture) Image() (image.Image, error) {
	img, err := bcn.DecodeImageWithOptions(t.Pix, t.Width, t.Height, bcn.FormatBGRA8, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return img, nil
}

// ReadOptions configures XNB reading.
type ReadOptions struct {
	// LZX inflates LZX compressed payloads. LZ4 payloads are always supported.
	LZX Decompressor
}

// DecodeHeader reads the 6 byte header and the first size field.
func DecodeHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize + 4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrHeaderRead, err)
	}
	if string(buf[:3]) != Magic {
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidMagic, buf[:3])
	}

	h := Header{
		Platform: buf[3],
		Version:  buf[4],
		Flags:    buf[5],
		// #nosec G115 -- two's complement reinterpretation.
		FileSize: int32(binary.LittleEndian.Uint32(buf[HeaderSize:])),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Flags&compressedFlags == compressedFlags {
		return Header{}, fmt.Errorf("%w: both compression flags set (0x%02x)", ErrInvalidFrameFlag, h.Flags)
	}

	return h, nil
}

// Decode reads an XNB Texture2D container from r.
// Nil opts supports uncompressed and LZ4 containers.
func Decode(r io.Reader, opts *ReadOptions) (*Texture, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}

	payload, err := readPayload(r, h, opts)
	if err != nil {
		return nil, err
	}

	tex, err := parseObjectBlock(payload)
	if err != nil {
		return nil, err
	}
	tex.Header = h

	return tex, nil
}

// readPayload returns the uncompressed object block that follows the header.
func readPayload(r io.Reader, h Header, opts *ReadOptions) ([]byte, error) {
	if !h.Compressed() {
		size := int(h.FileSize) - HeaderSize - 4
		if size < 0 {
			return nil, fmt.Errorf("%w: file size %d", ErrFileSizeMismatch, h.FileSize)
		}
		// One byte past the declared size detects trailing data.
		payload, err := io.ReadAll(io.LimitReader(r, int64(size)+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPayloadRead, err)
		}
		switch {
		case len(payload) < size:
			return nil, fmt.Errorf("%w: %d of %d bytes", ErrPayloadRead, len(payload), size)
		case len(payload) > size:
			return nil, fmt.Errorf("%w: trailing data after declared size", ErrFileSizeMismatch)
		}
		return payload, nil
	}

	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: uncompressed size: %v", ErrPayloadRead, err)
	}
	// #nosec G115 -- two's complement reinterpretation.
	size := int(int32(binary.LittleEndian.Uint32(sizeBuf[:])))
	if size < 0 {
		return nil, fmt.Errorf("%w: uncompressed size %d", ErrFileSizeMismatch, size)
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadRead, err)
	}
	// The frame size counts both size fields; XNA tools also count the
	// 6 byte header, accept either.
	declared := int(h.FileSize)
	if declared != compressedFrameOverhead+len(compressed) && declared != HeaderSize+compressedFrameOverhead+len(compressed) {
		return nil, fmt.Errorf("%w: frame size %d, compressed bytes %d", ErrFileSizeMismatch, declared, len(compressed))
	}

	var dec Decompressor = LZ4Codec{}
	if h.Flags&FlagCompressedLZX != 0 {
		if opts == nil || opts.LZX == nil {
			return nil, fmt.Errorf("%w: LZX payload", ErrCompressionUnavailable)
		}
		dec = opts.LZX
	}

	payload, err := dec.Decompress(compressed, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompressionFailure, err)
	}
	if len(payload) != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecompressionFailure, size, len(payload))
	}

	return payload, nil
}

// parseObjectBlock parses the type reader table and the Texture2D object.
func parseObjectBlock(payload []byte) (*Texture, error) {
	br := &byteReader{data: payload}

	readers, err := br.varint()
	if err != nil {
		return nil, err
	}
	if readers != 1 {
		return nil, fmt.Errorf("%w: %d type readers", ErrUnsupportedTypeReader, readers)
	}
	name, err := br.str()
	if err != nil {
		return nil, err
	}
	if !isTexture2DReader(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeReader, name)
	}
	readerVersion, err := br.i32()
	if err != nil {
		return nil, err
	}
	shared, err := br.varint()
	if err != nil {
		return nil, err
	}
	if shared != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSharedResources, shared)
	}
	typeID, err := br.u8()
	if err != nil {
		return nil, err
	}
	if typeID != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTypeID, typeID)
	}

	surface, err := br.u32()
	if err != nil {
		return nil, err
	}
	if surface != SurfaceFormatColor {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSurfaceFormat, surface)
	}

	var dims [4]int32 // width, height, mip count, level 0 length
	for i := range dims {
		if dims[i], err = br.i32(); err != nil {
			return nil, err
		}
	}
	width, height, mips, pixLen := int(dims[0]), int(dims[1]), int(dims[2]), int(dims[3])
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if mips < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMipCount, mips)
	}
	want, err := checkedArea(width, height)
	if err != nil {
		return nil, err
	}
	if pixLen != want {
		return nil, fmt.Errorf("%w: %dx%d declares %d bytes, want %d", ErrPixelLengthMismatch, width, height, pixLen, want)
	}
	pix, err := br.next(pixLen)
	if err != nil {
		return nil, err
	}

	return &Texture{
		TypeReader:    name,
		ReaderVersion: readerVersion,
		SurfaceFormat: surface,
		Width:         width,
		Height:        height,
		MipCount:      mips,
		Pix:           pix,
		PayloadSize:   len(payload),
	}, nil
}

// isTexture2DReader matches the reader by type name, ignoring the assembly
// qualification that differs between XNA and MonoGame.
func isTexture2DReader(name string) bool {
	typeName, _, _ := strings.Cut(name, ",")
	typeName = strings.TrimSpace(typeName)

	return typeName == "Microsoft.Xna.Framework.Content.Texture2DReader"
}

// ReadConfig reads XNB texture dimensions without converting pixel data.
func ReadConfig(path string) (image.Config, error) {
	tex, err := readTextureFile(path, nil)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      tex.Width,
		Height:     tex.Height,
		ColorModel: color.NRGBAModel,
	}, nil
}

// Read reads an XNB texture file into an image.
func Read(path string) (image.Image, error) {
	return ReadWithOptions(path, nil)
}

// ReadWithOptions reads an XNB texture file with the given options.
func ReadWithOptions(path string, opts *ReadOptions) (image.Image, error) {
	tex, err := readTextureFile(path, opts)
	if err != nil {
		return nil, err
	}

	return tex.Image()
}

// ReadTexture reads an XNB texture file keeping the raw stored pixels.
func ReadTexture(path string, opts *ReadOptions) (*Texture, error) {
	return readTextureFile(path, opts)
}

func readTextureFile(path string, opts *ReadOptions) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, opts)
}
