// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu is the GPU backend for uidraw. It compiles the WGSL
// shader stages to SPIR-V with naga, builds one render pipeline for
// the pixel variant matching the target format, and draws into an
// offscreen color texture on a HAL device supplied by the host.
//
// Textures are bound as read-only storage buffers of packed RGBA8
// texels with an explicit sampler configuration, so GPU sampling
// matches the CPU reference in backend/soft. Scissoring happens on the
// CPU: triangles are clipped geometrically against the scissor
// rectangle before upload.
package wgpu
