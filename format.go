package xnb

import (
	"fmt"
	"strings"
)

const (
	// Magic is the XNB format identifier.
	Magic = "XNB"
	// PlatformWindows is the target platform byte written by the encoder.
	PlatformWindows byte = 'w'
	// Version is the XNB format version (XNA Game Studio 4.0).
	Version byte = 5

	// FlagHiDef marks a HiDef profile container.
	FlagHiDef byte = 0x01
	// FlagCompressedLZ4 marks an LZ4 compressed payload (MonoGame).
	FlagCompressedLZ4 byte = 0x40
	// FlagCompressedLZX marks an LZX compressed payload.
	FlagCompressedLZX byte = 0x80

	// Texture2DReader is the assembly qualified type reader name of Texture2D.
	Texture2DReader = "Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework.Graphics, Version=4.0.0.0, Culture=neutral, PublicKeyToken=842cf8be1de50553"

	// SurfaceFormatColor is the 32-bit color surface format.
	SurfaceFormatColor uint32 = 0

	// HeaderSize is the size of magic, platform, version and flags.
	HeaderSize = 3 + 1 + 1 + 1
	// compressedFrameOverhead is the size of both size fields of a compressed frame.
	compressedFrameOverhead = 4 + 4
)

const compressedFlags = FlagCompressedLZ4 | FlagCompressedLZX

// Profile is the graphics capability tier written into the header flags.
type Profile uint8

const (
	// ProfileReach is the default low capability tier.
	ProfileReach Profile = iota
	// ProfileHiDef is the high capability tier.
	ProfileHiDef
)

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case ProfileReach:
		return "reach"
	case ProfileHiDef:
		return "hidef"
	default:
		return fmt.Sprintf("profile(%d)", uint8(p))
	}
}

// ParseProfile parses "reach" or "hidef" (case insensitive).
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reach", "":
		return ProfileReach, nil
	case "hidef":
		return ProfileHiDef, nil
	default:
		return ProfileReach, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
}

// headerFlags builds the header flag byte. compressFlag is 0 for an
// uncompressed container.
func headerFlags(profile Profile, compressFlag byte) byte {
	var flags byte
	if profile != ProfileReach {
		flags |= FlagHiDef
	}

	return flags | compressFlag
}

// appendHeader appends the 6 byte container header.
func appendHeader(buf []byte, flags byte) []byte {
	buf = append(buf, Magic...)
	return append(buf, PlatformWindows, Version, flags)
}

// pixelDataLength is the byte size of a 32-bit color surface.
func pixelDataLength(width, height int) int {
	return width * height * 4
}

// objectPrefixSize is the size of the object block up to, and excluding,
// the pixel bytes.
func objectPrefixSize() int {
	return varintLen(1) + // type reader count
		stringLen(Texture2DReader) +
		4 + // reader version
		varintLen(0) + // shared resource count
		1 + // type id
		4 + // surface format
		4 + 4 + // width, height
		4 + // mip count
		4 // pixel data length
}
