package cli

import (
	"fmt"
	"strings"

	"github.com/woozymasta/xnb"
)

var compressionNames = []string{"none", "lz4", "lzx"}

// codecByName returns the codec for a --compression value, nil for "none".
// LZX is recognized but has no implementation in this build, so asking for
// it fails up front instead of producing an unreadable file.
func codecByName(name string) (xnb.Codec, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "lz4":
		return xnb.LZ4Codec{}, nil
	case "lzx":
		return nil, fmt.Errorf("%w: lzx (use --compression lz4 or none)", ErrCodecUnavailable)
	default:
		return nil, fmt.Errorf("unknown compression %q (want one of %s)", name, strings.Join(compressionNames, ", "))
	}
}
