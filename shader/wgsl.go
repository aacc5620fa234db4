// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import _ "embed"

// Embedded WGSL shader sources. Each pixel variant concatenates the
// shared sampling prelude with its own entry point, yielding a
// standalone module per pipeline so the variant choice is a compile-time
// property, not a runtime branch.

//go:embed shaders/ui_vertex.wgsl
var vertexShaderSource string

//go:embed shaders/ui_sample.wgsl
var sampleShaderSource string

//go:embed shaders/ui_pixel_linear.wgsl
var pixelLinearShaderSource string

//go:embed shaders/ui_pixel_gamma.wgsl
var pixelGammaShaderSource string

// VertexShaderSource returns the WGSL module holding the vs_main entry
// point.
func VertexShaderSource() string {
	return vertexShaderSource
}

// PixelShaderSource returns the complete WGSL module for one pixel
// variant: the sampling prelude plus the fs_linear or fs_gamma entry
// point.
func PixelShaderSource(space ColorSpace) string {
	if space == Linear {
		return sampleShaderSource + "\n" + pixelLinearShaderSource
	}
	return sampleShaderSource + "\n" + pixelGammaShaderSource
}

// PixelEntryPoint returns the fragment entry-point name matching
// PixelShaderSource for the same color space.
func PixelEntryPoint(space ColorSpace) string {
	if space == Linear {
		return "fs_linear"
	}
	return "fs_gamma"
}

// VertexEntryPoint is the vertex entry-point name in VertexShaderSource.
const VertexEntryPoint = "vs_main"

// TexConfig mirrors the WGSL TexConfig uniform. Layout must match the
// shader: 48 bytes, border vec4 at offset 32.
type TexConfig struct {
	Width      uint32
	Height     uint32
	FilterMode uint32
	AddressU   uint32
	AddressV   uint32
	_          [3]uint32
	Border     [4]float32
}

// TexConfigFor packs a texture size and sampler into the uniform layout.
func TexConfigFor(width, height int, s Sampler) TexConfig {
	return TexConfig{
		Width:      uint32(width),
		Height:     uint32(height),
		FilterMode: uint32(s.Filter),
		AddressU:   uint32(s.AddressU),
		AddressV:   uint32(s.AddressV),
		Border:     [4]float32{s.Border.R, s.Border.G, s.Border.B, s.Border.A},
	}
}
