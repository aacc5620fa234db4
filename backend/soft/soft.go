// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package soft is a CPU backend for uidraw. It rasterizes draw calls
// by running the shader core per fragment, which makes it both a
// reference for the GPU backend and a renderer for headless use.
package soft

import (
	"errors"
	"image"

	"github.com/gogpu/uidraw"
	"github.com/gogpu/uidraw/internal/color"
	"github.com/gogpu/uidraw/shader"
)

// ErrNoTarget is returned when a Backend is built without a target.
var ErrNoTarget = errors.New("soft: no render target")

// Target is an RGBA8 render target. SRGB mirrors sRGB-typed GPU
// formats: stored bytes are sRGB-encoded, writes encode and blending
// decodes back to linear first. A non-SRGB target stores shader output
// verbatim and blends on stored values.
type Target struct {
	Width  int
	Height int
	Pix    []byte
	SRGB   bool
}

// NewTarget allocates a transparent-black target.
func NewTarget(width, height int, srgb bool) *Target {
	return &Target{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
		SRGB:   srgb,
	}
}

// ColorSpace returns the pixel variant a renderer must pair with this
// target: Linear when the target encodes on write, Gamma otherwise.
func (t *Target) ColorSpace() shader.ColorSpace {
	if t.SRGB {
		return shader.Linear
	}
	return shader.Gamma
}

// Clear fills the target with one color, encoding if the target is
// sRGB-typed. The color is given in linear space.
func (t *Target) Clear(c shader.RGBA) {
	var px [4]byte
	if t.SRGB {
		px[0] = color.LinearToSRGBFast(c.R)
		px[1] = color.LinearToSRGBFast(c.G)
		px[2] = color.LinearToSRGBFast(c.B)
	} else {
		enc := shader.EncodeSRGB(c)
		px[0] = floatToByte(enc.R)
		px[1] = floatToByte(enc.G)
		px[2] = floatToByte(enc.B)
	}
	px[3] = floatToByte(c.A)
	for i := 0; i < len(t.Pix); i += 4 {
		copy(t.Pix[i:i+4], px[:])
	}
}

// ToImage copies the target into a standard image.
func (t *Target) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	copy(img.Pix, t.Pix)
	return img
}

// Backend rasterizes uidraw draw calls into a Target.
type Backend struct {
	target   *Target
	pipeline *shader.Pipeline
	sampler  shader.Sampler
	textures map[uidraw.TextureID]*shader.Texture
}

// New builds a backend over a target. The pixel variant is resolved
// here, once, from the target's color space.
func New(target *Target) (*Backend, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	return &Backend{
		target:   target,
		pipeline: shader.NewPipeline(target.ColorSpace()),
		sampler:  shader.DefaultSampler(),
		textures: make(map[uidraw.TextureID]*shader.Texture),
	}, nil
}

// Target returns the backend's render target.
func (b *Backend) Target() *Target { return b.target }

// UpdateTexture implements uidraw.Backend. The CPU copy is shared with
// the pool, not duplicated.
func (b *Backend) UpdateTexture(id uidraw.TextureID, tex *shader.Texture) {
	b.textures[id] = tex
}

// FreeTexture implements uidraw.Backend.
func (b *Backend) FreeTexture(id uidraw.TextureID) {
	delete(b.textures, id)
}

// Draw implements uidraw.Backend: runs the vertex stage, rasterizes
// each indexed triangle under the draw's scissor, and blends fragments
// in order.
func (b *Backend) Draw(draws []uidraw.Draw) error {
	for _, d := range draws {
		tex := d.Texture
		if tex == nil {
			if pooled, ok := b.textures[d.TextureID]; ok {
				tex = pooled
			} else {
				uidraw.Logger().Warn("draw without texture skipped",
					"texture", uint64(d.TextureID))
				continue
			}
		}

		outs := make([]shader.VertexOut, len(d.Vertices))
		for i, v := range d.Vertices {
			outs[i] = b.pipeline.Vertex(v)
		}

		for i := 0; i+2 < len(d.Indices); i += 3 {
			b.rasterize(
				outs[d.Indices[i]],
				outs[d.Indices[i+1]],
				outs[d.Indices[i+2]],
				tex, d.Scissor,
			)
		}
	}
	return nil
}

var _ uidraw.Backend = (*Backend)(nil)
