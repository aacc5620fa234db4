// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package uidraw

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/uidraw/shader"
)

// DeviceHandle provides GPU device access from the host application.
//
// uidraw RECEIVES the device from the host, it does not create one:
// the host owns the surface and swap chain, uidraw only draws into
// them. DeviceHandle is an alias for gpucontext.DeviceProvider so any
// gpucontext host plugs in directly.
type DeviceHandle = gpucontext.DeviceProvider

// ColorSpaceForFormat derives the pixel-stage variant from a render
// target format. sRGB-typed formats encode on write, so the shader
// must emit linear values; everything else stores verbatim and the
// shader encodes.
func ColorSpaceForFormat(format gputypes.TextureFormat) shader.ColorSpace {
	switch format {
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return shader.Linear
	default:
		return shader.Gamma
	}
}

// ColorSpaceForDevice derives the pixel-stage variant from the host's
// surface format.
func ColorSpaceForDevice(h DeviceHandle) shader.ColorSpace {
	return ColorSpaceForFormat(h.SurfaceFormat())
}
