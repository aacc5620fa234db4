// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/uidraw"
	"github.com/gogpu/uidraw/shader"
)

// clipRect is a scissor rectangle converted to clip-space bounds.
type clipRect struct {
	minX, maxX float32
	minY, maxY float32
}

// toClipRect maps a pixel scissor onto clip coordinates. Pixel y grows
// downward, clip y upward, so the top edge becomes maxY.
func toClipRect(sc uidraw.ScissorRect, width, height int) clipRect {
	w := float32(width)
	h := float32(height)
	return clipRect{
		minX: float32(sc.X)/w*2 - 1,
		maxX: float32(sc.X+sc.Width)/w*2 - 1,
		minY: 1 - float32(sc.Y+sc.Height)/h*2,
		maxY: 1 - float32(sc.Y)/h*2,
	}
}

// covers reports whether the scissor spans the whole target, making
// clipping a no-op.
func covers(sc uidraw.ScissorRect, width, height int) bool {
	return sc.X <= 0 && sc.Y <= 0 &&
		sc.X+sc.Width >= width && sc.Y+sc.Height >= height
}

func lerpVertex(a, b shader.Vertex, t float32) shader.Vertex {
	return shader.Vertex{
		Pos: shader.Vec2{
			X: a.Pos.X + (b.Pos.X-a.Pos.X)*t,
			Y: a.Pos.Y + (b.Pos.Y-a.Pos.Y)*t,
		},
		UV: shader.Vec2{
			X: a.UV.X + (b.UV.X-a.UV.X)*t,
			Y: a.UV.Y + (b.UV.Y-a.UV.Y)*t,
		},
		Color: shader.RGBA{
			R: a.Color.R + (b.Color.R-a.Color.R)*t,
			G: a.Color.G + (b.Color.G-a.Color.G)*t,
			B: a.Color.B + (b.Color.B-a.Color.B)*t,
			A: a.Color.A + (b.Color.A-a.Color.A)*t,
		},
	}
}

// clipPoly clips a convex polygon against one half-plane. dist must be
// >= 0 for inside points and linear along edges, so intersection
// attributes interpolate exactly.
func clipPoly(poly []shader.Vertex, dist func(shader.Vertex) float32) []shader.Vertex {
	if len(poly) == 0 {
		return poly
	}
	out := make([]shader.Vertex, 0, len(poly)+1)
	for i := range poly {
		cur := poly[i]
		next := poly[(i+1)%len(poly)]
		dc := dist(cur)
		dn := dist(next)
		if dc >= 0 {
			out = append(out, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			out = append(out, lerpVertex(cur, next, t))
		}
	}
	return out
}

// clipTriangle clips one triangle against the rectangle and returns
// the surviving geometry as a fan-triangulated list, three vertices
// per triangle.
func clipTriangle(v0, v1, v2 shader.Vertex, r clipRect, out []shader.Vertex) []shader.Vertex {
	poly := []shader.Vertex{v0, v1, v2}
	poly = clipPoly(poly, func(v shader.Vertex) float32 { return v.Pos.X - r.minX })
	poly = clipPoly(poly, func(v shader.Vertex) float32 { return r.maxX - v.Pos.X })
	poly = clipPoly(poly, func(v shader.Vertex) float32 { return v.Pos.Y - r.minY })
	poly = clipPoly(poly, func(v shader.Vertex) float32 { return r.maxY - v.Pos.Y })
	for i := 2; i < len(poly); i++ {
		out = append(out, poly[0], poly[i-1], poly[i])
	}
	return out
}

// expandAndClip resolves a draw's indices into plain triangles, clipped
// against its scissor. The result feeds the vertex buffer directly; no
// index buffer is uploaded.
func expandAndClip(d uidraw.Draw, width, height int) []shader.Vertex {
	full := covers(d.Scissor, width, height)
	r := toClipRect(d.Scissor, width, height)

	out := make([]shader.Vertex, 0, len(d.Indices))
	for i := 0; i+2 < len(d.Indices); i += 3 {
		v0 := d.Vertices[d.Indices[i]]
		v1 := d.Vertices[d.Indices[i+1]]
		v2 := d.Vertices[d.Indices[i+2]]
		if full {
			out = append(out, v0, v1, v2)
			continue
		}
		out = clipTriangle(v0, v1, v2, r, out)
	}
	return out
}
