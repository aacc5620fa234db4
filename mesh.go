// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package uidraw

import "github.com/gogpu/uidraw/shader"

// Vertex is one element of a UI mesh, in logical points. The renderer
// converts positions to clip space; UV and color flow through to the
// shader stages untouched.
type Vertex struct {
	Pos   shader.Vec2 // logical points, origin top-left
	UV    shader.Vec2 // [0,1] over the mesh's texture
	Color shader.RGBA // linear-space tint, straight alpha
}

// Mesh is an indexed triangle list referencing one texture. Indices
// come in groups of three; a count not divisible by three marks the
// mesh malformed and the renderer skips it with a warning.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Texture  TextureID
}

// Rect is an axis-aligned rectangle in logical points.
type Rect struct {
	Min shader.Vec2
	Max shader.Vec2
}

// ClippedMesh pairs a mesh with its clip rectangle. Fragments outside
// the rectangle are discarded by the backend's scissor.
type ClippedMesh struct {
	ClipRect Rect
	Mesh     Mesh
}

// Frame is one frame of UI output: ordered meshes plus the texture
// changes that must land before any of them draw. Blending correctness
// relies on mesh order alone, back to front.
type Frame struct {
	Meshes       []ClippedMesh
	SetTextures  []TextureUpdate
	FreeTextures []TextureID

	// PixelsPerPoint scales logical points to physical pixels.
	// Zero or negative means 1.
	PixelsPerPoint float32
}

// Empty reports whether the frame carries no work at all.
func (f *Frame) Empty() bool {
	return f == nil ||
		(len(f.Meshes) == 0 && len(f.SetTextures) == 0 && len(f.FreeTextures) == 0)
}
