// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/chewxy/math32"

// Texture is a read-only RGBA8 image sampled by the pixel stage. Texels
// are stored row-major, 4 bytes per pixel, and read back as float32 in
// [0, 1].
type Texture struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height*4
}

// NewTexture allocates a zeroed texture of the given size.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Texel returns the texel at (x, y) without filtering or addressing.
// Coordinates must be in bounds.
func (t *Texture) Texel(x, y int) RGBA {
	i := (y*t.Width + x) * 4
	const inv = 1.0 / 255.0
	return RGBA{
		R: float32(t.Pix[i]) * inv,
		G: float32(t.Pix[i+1]) * inv,
		B: float32(t.Pix[i+2]) * inv,
		A: float32(t.Pix[i+3]) * inv,
	}
}

// SetTexel writes one texel from float channels, clamping to [0, 1].
func (t *Texture) SetTexel(x, y int, c RGBA) {
	i := (y*t.Width + x) * 4
	t.Pix[i] = floatToByte(c.R)
	t.Pix[i+1] = floatToByte(c.G)
	t.Pix[i+2] = floatToByte(c.B)
	t.Pix[i+3] = floatToByte(c.A)
}

func floatToByte(c float32) byte {
	v := c * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}

// Filter selects how a sampler reconstructs texels between centers.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// AddressMode selects how a sampler treats coordinates outside [0, 1].
type AddressMode int

const (
	// AddressClampToEdge extends the edge texels outward.
	AddressClampToEdge AddressMode = iota
	// AddressRepeat wraps coordinates, tiling the texture.
	AddressRepeat
	// AddressBorder substitutes the sampler's border color outside
	// the texture.
	AddressBorder
)

// Sampler describes texture addressing and filtering. The zero value is
// not useful; start from DefaultSampler.
type Sampler struct {
	Filter   Filter
	AddressU AddressMode
	AddressV AddressMode
	Border   RGBA
}

// DefaultSampler returns the sampler UI rendering binds: bilinear
// filtering with an opaque-white border, so geometry sampling just
// outside the atlas reads as untinted.
func DefaultSampler() Sampler {
	return Sampler{
		Filter:   FilterLinear,
		AddressU: AddressBorder,
		AddressV: AddressBorder,
		Border:   RGBA{R: 1, G: 1, B: 1, A: 1},
	}
}

// resolveAxis maps an integer texel coordinate onto [0, n) per the
// address mode. The bool reports whether the coordinate resolved inside
// the texture; false means the border color applies.
func resolveAxis(i, n int, mode AddressMode) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch mode {
	case AddressRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case AddressBorder:
		return 0, false
	default: // AddressClampToEdge
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	}
}

// fetch reads the texel at integer coordinates (x, y) after addressing.
func (t *Texture) fetch(s Sampler, x, y int) RGBA {
	rx, okx := resolveAxis(x, t.Width, s.AddressU)
	ry, oky := resolveAxis(y, t.Height, s.AddressV)
	if !okx || !oky {
		return s.Border
	}
	return t.Texel(rx, ry)
}

// Sample reads the texture at normalized coordinates uv using the given
// sampler. Linear filtering blends the four nearest texels; border
// addressing blends the border color in at the edges rather than
// switching to it abruptly.
func (t *Texture) Sample(s Sampler, uv Vec2) RGBA {
	if t.Width == 0 || t.Height == 0 {
		return s.Border
	}
	if s.Filter == FilterNearest {
		x := int(math32.Floor(uv.X * float32(t.Width)))
		y := int(math32.Floor(uv.Y * float32(t.Height)))
		return t.fetch(s, x, y)
	}

	// Bilinear: texel centers sit at half-integer coordinates.
	fx := uv.X*float32(t.Width) - 0.5
	fy := uv.Y*float32(t.Height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.fetch(s, x0, y0)
	c10 := t.fetch(s, x0+1, y0)
	c01 := t.fetch(s, x0, y0+1)
	c11 := t.fetch(s, x0+1, y0+1)

	top := lerpRGBA(c00, c10, tx)
	bot := lerpRGBA(c01, c11, tx)
	return lerpRGBA(top, bot, ty)
}

func lerpRGBA(a, b RGBA, t float32) RGBA {
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
