// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// CompileToSPIRV compiles a WGSL module to SPIR-V words. SPIR-V is
// little-endian 32-bit; naga hands back bytes.
func CompileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// CompileVertex compiles the vertex stage to an independent SPIR-V blob.
func CompileVertex() ([]uint32, error) {
	return CompileToSPIRV(VertexShaderSource())
}

// CompilePixel compiles one pixel-stage variant to an independent
// SPIR-V blob. Each variant is its own module; a pipeline links exactly
// one of them.
func CompilePixel(space ColorSpace) ([]uint32, error) {
	return CompileToSPIRV(PixelShaderSource(space))
}
