package xnb

import "errors"

var (
	// ErrInvalidDimensions indicates non-positive dimensions or a pixel buffer
	// whose length does not match them.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrSinkWrite indicates the output sink rejected a write.
	ErrSinkWrite = errors.New("sink write failed")
	// ErrCompressionUnavailable indicates compression was requested without a codec.
	ErrCompressionUnavailable = errors.New("compression unavailable")
	// ErrCompressionFailure indicates the codec failed or broke its contract.
	ErrCompressionFailure = errors.New("compression failed")
	// ErrDecompressionFailure indicates a compressed payload could not be inflated.
	ErrDecompressionFailure = errors.New("decompression failed")
	// ErrUnknownProfile indicates an unrecognized profile name.
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrInvalidFrameFlag indicates a codec asked for an unusable header flag.
	ErrInvalidFrameFlag = errors.New("invalid frame flag")

	// ErrInvalidMagic indicates the stream does not start with "XNB".
	ErrInvalidMagic = errors.New("invalid XNB magic")
	// ErrUnsupportedVersion indicates an XNB version other than 5.
	ErrUnsupportedVersion = errors.New("unsupported XNB version")
	// ErrHeaderRead indicates the container header could not be read.
	ErrHeaderRead = errors.New("reading header failed")
	// ErrFileSizeMismatch indicates a declared size disagrees with the data.
	ErrFileSizeMismatch = errors.New("declared size mismatch")
	// ErrPayloadRead indicates the object payload could not be read.
	ErrPayloadRead = errors.New("reading payload failed")
	// ErrTruncatedPayload indicates the object payload ended early.
	ErrTruncatedPayload = errors.New("truncated payload")
	// ErrInvalidVarint indicates a malformed 7-bit encoded integer.
	ErrInvalidVarint = errors.New("invalid 7-bit encoded integer")
	// ErrUnsupportedTypeReader indicates the payload is not a Texture2D.
	ErrUnsupportedTypeReader = errors.New("unsupported type reader")
	// ErrUnsupportedSharedResources indicates shared resources are present.
	ErrUnsupportedSharedResources = errors.New("unsupported shared resources")
	// ErrInvalidTypeID indicates a null or out of range object type id.
	ErrInvalidTypeID = errors.New("invalid type id")
	// ErrUnsupportedSurfaceFormat indicates a surface format other than color.
	ErrUnsupportedSurfaceFormat = errors.New("unsupported surface format")
	// ErrInvalidMipCount indicates a texture without mip levels.
	ErrInvalidMipCount = errors.New("invalid mip count")
	// ErrPixelLengthMismatch indicates the pixel length field disagrees with
	// the dimensions.
	ErrPixelLengthMismatch = errors.New("pixel length mismatch")
	// ErrDecodeImage indicates pixel data could not be turned into an image.
	ErrDecodeImage = errors.New("decode image failed")

	// ErrOpenFile indicates XNB file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrCloseFile indicates flushing or closing the output file failed.
	ErrCloseFile = errors.New("close file failed")
	// ErrRenameFile indicates the finished output could not replace the
	// destination.
	ErrRenameFile = errors.New("rename file failed")
)
