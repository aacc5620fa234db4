// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader implements the two programmable stages of the uidraw
// rendering pipeline: a vertex stage that forwards pre-transformed UI
// geometry to the rasterizer, and a pixel stage that combines a sampled
// texture with the interpolated vertex color.
//
// The pixel stage exists in two variants distinguished only by color-space
// handling. The Linear variant emits the raw product for render targets
// that gamma-encode on write (sRGB-typed targets). The Gamma variant
// applies the sRGB transfer function to the color channels before output,
// for targets that store values verbatim. The variant is chosen once, when
// a Pipeline is built, never per fragment.
//
// Every function in this package is referentially transparent: the bound
// texture and sampler are explicit parameters, so both stages can be
// evaluated and tested without a device or a rasterizer. The same
// semantics exist as WGSL entry points (see ModuleSource and Compile) for
// execution on a GPU.
package shader
