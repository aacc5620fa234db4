// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package uidraw

import (
	"errors"
	"fmt"

	"github.com/gogpu/uidraw/shader"
)

// ErrNoBackend is returned when a Renderer is constructed without a
// backend.
var ErrNoBackend = errors.New("uidraw: no backend")

// ScissorRect bounds a draw in physical pixels.
type ScissorRect struct {
	X, Y          int
	Width, Height int
}

// Draw is one backend draw call: clip-space vertices, triangle
// indices, and the resolved texture. Backends execute draws in slice
// order with SrcAlpha/InvSrcAlpha blending on color and One/Zero on
// alpha.
type Draw struct {
	Vertices  []shader.Vertex
	Indices   []uint32
	TextureID TextureID
	Texture   *shader.Texture
	Scissor   ScissorRect
}

// Backend consumes draw calls and mirrors the texture pool. The
// renderer owns ordering and coordinate conversion; a backend only
// rasterizes.
type Backend interface {
	// UpdateTexture creates or replaces the backend copy of a texture.
	// The CPU copy stays owned by the pool and is valid until freed.
	UpdateTexture(id TextureID, tex *shader.Texture)

	// FreeTexture drops the backend copy of a texture.
	FreeTexture(id TextureID)

	// Draw executes the calls in order against the backend's target.
	Draw(draws []Draw) error
}

// Renderer turns frames of UI output into backend draw calls.
type Renderer struct {
	backend Backend
	pool    *TexturePool
	space   shader.ColorSpace
	sampler shader.Sampler
}

// NewRenderer builds a renderer over a backend. The color space must
// match the backend's render target (see ColorSpaceForFormat); it is
// fixed for the renderer's lifetime, the way pipeline state is.
func NewRenderer(backend Backend, space shader.ColorSpace) (*Renderer, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	return &Renderer{
		backend: backend,
		pool:    NewTexturePool(),
		space:   space,
		sampler: shader.DefaultSampler(),
	}, nil
}

// ColorSpace reports the pixel variant this renderer pairs with.
func (r *Renderer) ColorSpace() shader.ColorSpace { return r.space }

// Sampler returns the sampler state backends should bind: bilinear
// filtering with an opaque-white border.
func (r *Renderer) Sampler() shader.Sampler { return r.sampler }

// Pool exposes the texture pool, mainly for inspection in tests.
func (r *Renderer) Pool() *TexturePool { return r.pool }

// Render applies the frame's texture changes and draws its meshes onto
// a target of width x height physical pixels. Malformed meshes are
// skipped with a warning; only backend failures surface as errors.
func (r *Renderer) Render(width, height int, frame *Frame) error {
	if frame.Empty() {
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("uidraw: bad target size %dx%d", width, height)
	}

	r.pool.Apply(r.backend, frame.SetTextures, frame.FreeTextures)

	ppp := frame.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}

	draws := make([]Draw, 0, len(frame.Meshes))
	for _, cm := range frame.Meshes {
		mesh := cm.Mesh
		if len(mesh.Indices) == 0 || len(mesh.Vertices) == 0 {
			continue
		}
		if len(mesh.Indices)%3 != 0 {
			Logger().Warn("mesh with incomplete triangles skipped",
				"texture", uint64(mesh.Texture), "indices", len(mesh.Indices))
			continue
		}
		tex, ok := r.pool.Get(mesh.Texture)
		if !ok {
			Logger().Warn("mesh references unknown texture",
				"texture", uint64(mesh.Texture))
			continue
		}

		scissor, ok := scissorFor(cm.ClipRect, ppp, width, height)
		if !ok {
			continue
		}

		verts := make([]shader.Vertex, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			verts[i] = shader.Vertex{
				Pos:   toClipSpace(v.Pos, ppp, width, height),
				UV:    v.UV,
				Color: v.Color,
			}
		}

		draws = append(draws, Draw{
			Vertices:  verts,
			Indices:   mesh.Indices,
			TextureID: mesh.Texture,
			Texture:   tex,
			Scissor:   scissor,
		})
	}

	if len(draws) == 0 {
		return nil
	}
	Logger().Debug("rendering frame", "draws", len(draws), "width", width, "height", height)
	return r.backend.Draw(draws)
}

// toClipSpace maps a position in logical points onto [-1,1] clip
// coordinates, with y flipped: points grow downward, clip space grows
// upward.
func toClipSpace(p shader.Vec2, ppp float32, width, height int) shader.Vec2 {
	return shader.Vec2{
		X: p.X*ppp/float32(width)*2 - 1,
		Y: 1 - p.Y*ppp/float32(height)*2,
	}
}

// scissorFor scales a clip rectangle to physical pixels and clamps it
// to the target. The bool is false when nothing survives.
func scissorFor(clip Rect, ppp float32, width, height int) (ScissorRect, bool) {
	x0 := int(clip.Min.X * ppp)
	y0 := int(clip.Min.Y * ppp)
	x1 := int(clip.Max.X*ppp + 0.5)
	y1 := int(clip.Max.Y*ppp + 0.5)

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	if x1 <= x0 || y1 <= y0 {
		return ScissorRect{}, false
	}
	return ScissorRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
