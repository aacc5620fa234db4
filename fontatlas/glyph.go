// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// glyphMask is a rasterized glyph: an alpha coverage mask plus layout
// metrics in pixels.
type glyphMask struct {
	Mask *image.Alpha

	// Bounds is the glyph box relative to the baseline origin.
	Bounds image.Rectangle

	// Advance is the horizontal pen advance in pixels.
	Advance float64
}

// rasterizeGlyph renders a single glyph at the given pixel size using
// the standard font.Drawer path.
func rasterizeGlyph(f *opentype.Font, r rune, ppem float64) (*glyphMask, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    ppem,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return nil, fmt.Errorf("glyph %q not in font", r)
	}

	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		// Whitespace glyph: advance only, no coverage.
		return &glyphMask{
			Mask:    image.NewAlpha(image.Rect(0, 0, 0, 0)),
			Advance: float64(advance) / 64,
		}, nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot: fixed.Point26_6{
			X: -bounds.Min.X,
			Y: -bounds.Min.Y,
		},
	}
	d.DrawString(string(r))

	return &glyphMask{
		Mask:    mask,
		Bounds:  image.Rect(minX, minY, maxX, maxY),
		Advance: float64(advance) / 64,
	}, nil
}
