// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package uidraw renders immediate-mode UI output: per-frame triangle
// meshes of pre-transformed 2-D vertices, clip rectangles, and texture
// atlas deltas.
//
// The Renderer converts UI points to clip space, maintains the texture
// pool, and hands ordered draw calls to a Backend. Two backends ship
// with the module: backend/soft, a CPU rasterizer that executes the
// shader core per fragment, and backend/wgpu, which compiles the same
// stages from WGSL and runs them on a GPU device supplied by the host.
//
// Color-space handling follows the render target. Targets with an
// sRGB-typed format encode on write and pair with the Linear pixel
// variant; targets that store values verbatim pair with the Gamma
// variant, which applies the sRGB transfer function in the shader. Use
// ColorSpaceForFormat to derive the variant from a surface format.
//
// Vertex colors and texture data are taken to be in linear space with
// straight (non-premultiplied) alpha. Draws blend in submission order
// with SrcAlpha/InvSrcAlpha on color and One/Zero on alpha.
package uidraw
