// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xnb

package xnb

const maxInt32 = int(^uint32(0) >> 1)

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}

	return int32(n), nil
}

// checkedArea returns width*height*4 or ErrSizeOverflow when the product does
// not fit the signed 32-bit length fields of the container.
func checkedArea(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, ErrSizeOverflow
	}
	if width > maxInt32/4/height {
		return 0, ErrSizeOverflow
	}

	return pixelDataLength(width, height), nil
}
