// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/chewxy/math32"

// srgbThreshold splits the linear toe from the power curve of the sRGB
// transfer function. Both branches agree at the threshold to within
// float32 rounding.
const srgbThreshold = 0.0031308

// EncodeSRGBChannel applies the piecewise sRGB transfer function to one
// color channel. Values at or below the threshold use the linear toe;
// above it, the 2.4-root power curve with the magnitude of the input, so
// slightly negative values from interpolation stay finite rather than
// producing NaN. NaN inputs propagate.
func EncodeSRGBChannel(c float32) float32 {
	if c <= srgbThreshold {
		return 12.92 * c
	}
	return 1.055*math32.Pow(math32.Abs(c), 1.0/2.4) - 0.055
}

// EncodeSRGB gamma-encodes the color channels of c. Alpha passes through
// untouched: coverage is not a color and is never encoded.
func EncodeSRGB(c RGBA) RGBA {
	return RGBA{
		R: EncodeSRGBChannel(c.R),
		G: EncodeSRGBChannel(c.G),
		B: EncodeSRGBChannel(c.B),
		A: c.A,
	}
}
