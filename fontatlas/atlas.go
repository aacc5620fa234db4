// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fontatlas packs rasterized glyph coverage into a single
// texture for the renderer. Glyphs are rendered on demand, shelf-packed
// into a coverage buffer, and shipped to the renderer as texture
// updates: the whole atlas once, then per-glyph patches.
package fontatlas

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/opentype"

	"github.com/gogpu/uidraw"
	"github.com/gogpu/uidraw/shader"
)

// ErrAtlasFull is returned when no shelf can fit a new glyph.
var ErrAtlasFull = errors.New("fontatlas: atlas full")

// whiteSize is the side of the reserved solid-white block at the
// atlas origin. Untextured fills sample its center so every draw can
// share one texture.
const whiteSize = 2

// Glyph is a packed glyph: where it lives in the atlas and how to
// place it relative to the baseline.
type Glyph struct {
	// UVMin and UVMax bound the glyph region in texture coordinates.
	UVMin, UVMax shader.Vec2

	// Width and Height are the region size in texels. Zero for
	// whitespace glyphs, which carry only an advance.
	Width, Height int

	// OffsetX and OffsetY position the region's top-left corner
	// relative to the baseline origin, in pixels.
	OffsetX, OffsetY float64

	// Advance is the horizontal pen advance in pixels.
	Advance float64
}

type glyphKey struct {
	r rune
	// ppem in 26.6 fixed point so float sizes hash exactly.
	ppem64 int64
}

// Atlas accumulates glyph coverage and emits texture updates for the
// renderer. Not safe for concurrent use.
type Atlas struct {
	id       uidraw.TextureID
	width    int
	height   int
	coverage []float32
	alloc    *shelfAllocator
	glyphs   map[glyphKey]Glyph

	sentWhole bool
	pending   []uidraw.TextureUpdate
}

// New creates an empty atlas that will publish under the given texture
// id. The white block at the origin is reserved immediately.
func New(id uidraw.TextureID, width, height int) (*Atlas, error) {
	if width < 2*whiteSize || height < 2*whiteSize {
		return nil, fmt.Errorf("fontatlas: size %dx%d too small", width, height)
	}
	a := &Atlas{
		id:       id,
		width:    width,
		height:   height,
		coverage: make([]float32, width*height),
		alloc:    newShelfAllocator(width, height, 1),
		glyphs:   make(map[glyphKey]Glyph),
	}
	a.reserveWhite()
	return a, nil
}

func (a *Atlas) reserveWhite() {
	// First allocation always lands at the origin.
	a.alloc.allocate(whiteSize, whiteSize)
	for y := 0; y < whiteSize; y++ {
		for x := 0; x < whiteSize; x++ {
			a.coverage[y*a.width+x] = 1
		}
	}
}

// TextureID returns the id the atlas publishes under.
func (a *Atlas) TextureID() uidraw.TextureID { return a.id }

// Size returns the atlas dimensions in texels.
func (a *Atlas) Size() (width, height int) { return a.width, a.height }

// WhiteUV returns the center of the solid-white block. Untextured
// geometry uses it as its texture coordinate.
func (a *Atlas) WhiteUV() shader.Vec2 {
	return shader.Vec2{
		X: float32(whiteSize) / 2 / float32(a.width),
		Y: float32(whiteSize) / 2 / float32(a.height),
	}
}

// Utilization reports the fraction of atlas area holding glyphs.
func (a *Atlas) Utilization() float64 { return a.alloc.utilization() }

// Glyph returns the packed glyph for r at the given pixel size,
// rasterizing and packing it on first use. Whitespace glyphs come back
// with zero size and the white block's UV so they are safe to draw.
func (a *Atlas) Glyph(f *opentype.Font, r rune, ppem float64) (Glyph, error) {
	key := glyphKey{r: r, ppem64: int64(ppem * 64)}
	if g, ok := a.glyphs[key]; ok {
		return g, nil
	}

	mask, err := rasterizeGlyph(f, r, ppem)
	if err != nil {
		return Glyph{}, err
	}

	b := mask.Mask.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		g := Glyph{UVMin: a.WhiteUV(), UVMax: a.WhiteUV(), Advance: mask.Advance}
		a.glyphs[key] = g
		return g, nil
	}

	x, y, ok := a.alloc.allocate(w, h)
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %dx%d glyph %q", ErrAtlasFull, w, h, r)
	}

	region := make([]float32, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			v := float32(mask.Mask.AlphaAt(b.Min.X+col, b.Min.Y+row).A) / 255
			region[row*w+col] = v
			a.coverage[(y+row)*a.width+x+col] = v
		}
	}

	if a.sentWhole {
		pos := [2]int{x, y}
		a.pending = append(a.pending, uidraw.TextureUpdate{
			ID: a.id,
			Image: uidraw.Image{
				Width: w, Height: h,
				Kind:     uidraw.ImageFont,
				Coverage: region,
			},
			Pos: &pos,
		})
	}

	g := Glyph{
		UVMin:   shader.Vec2{X: float32(x) / float32(a.width), Y: float32(y) / float32(a.height)},
		UVMax:   shader.Vec2{X: float32(x+w) / float32(a.width), Y: float32(y+h) / float32(a.height)},
		Width:   w,
		Height:  h,
		OffsetX: float64(mask.Bounds.Min.X),
		OffsetY: float64(mask.Bounds.Min.Y),
		Advance: mask.Advance,
	}
	a.glyphs[key] = g
	return g, nil
}

// Flush returns the texture updates accumulated since the last call.
// The first flush carries the whole atlas; later flushes carry only
// the regions of newly added glyphs.
func (a *Atlas) Flush() []uidraw.TextureUpdate {
	if !a.sentWhole {
		a.sentWhole = true
		a.pending = nil
		whole := make([]float32, len(a.coverage))
		copy(whole, a.coverage)
		return []uidraw.TextureUpdate{{
			ID: a.id,
			Image: uidraw.Image{
				Width: a.width, Height: a.height,
				Kind:     uidraw.ImageFont,
				Coverage: whole,
			},
		}}
	}
	out := a.pending
	a.pending = nil
	return out
}

// Reset drops every glyph and returns the atlas to its initial state.
// The next Flush publishes the whole (cleared) atlas again.
func (a *Atlas) Reset() {
	for i := range a.coverage {
		a.coverage[i] = 0
	}
	a.alloc.reset()
	a.glyphs = make(map[glyphKey]Glyph)
	a.sentWhole = false
	a.pending = nil
	a.reserveWhite()
}
