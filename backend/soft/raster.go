// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"github.com/gogpu/uidraw"
	"github.com/gogpu/uidraw/internal/color"
	"github.com/gogpu/uidraw/shader"
)

// screenPos maps a clip-space position onto pixel coordinates, y down.
func (b *Backend) screenPos(v shader.Vec4) (float32, float32) {
	x := (v.X + 1) * 0.5 * float32(b.target.Width)
	y := (1 - v.Y) * 0.5 * float32(b.target.Height)
	return x, y
}

// edge is the signed doubled area of triangle (ax,ay)-(bx,by)-(px,py).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize scan-converts one triangle and shades covered pixels.
// Fragments interpolate UV and color barycentrically; positions are
// affine so no perspective correction is needed.
func (b *Backend) rasterize(v0, v1, v2 shader.VertexOut, tex *shader.Texture, sc uidraw.ScissorRect) {
	x0, y0 := b.screenPos(v0.ClipPos)
	x1, y1 := b.screenPos(v1.ClipPos)
	x2, y2 := b.screenPos(v2.ClipPos)

	area := edge(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Accept both windings: flip so the edge tests read positive.
	if area < 0 {
		x1, y1, x2, y2 = x2, y2, x1, y1
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(min3(x0, x1, x2))
	minY := int(min3(y0, y1, y2))
	maxX := int(max3(x0, x1, x2)) + 1
	maxY := int(max3(y0, y1, y2)) + 1

	// Intersect with scissor and target bounds.
	minX = maxInt(minX, sc.X)
	minY = maxInt(minY, sc.Y)
	maxX = minInt(maxX, sc.X+sc.Width)
	maxY = minInt(maxY, sc.Y+sc.Height)
	minX = maxInt(minX, 0)
	minY = maxInt(minY, 0)
	maxX = minInt(maxX, b.target.Width)
	maxY = minInt(maxY, b.target.Height)
	if minX >= maxX || minY >= maxY {
		return
	}

	invArea := 1 / area
	for py := minY; py < maxY; py++ {
		fy := float32(py) + 0.5
		for px := minX; px < maxX; px++ {
			fx := float32(px) + 0.5
			w0 := edge(x1, y1, x2, y2, fx, fy)
			w1 := edge(x2, y2, x0, y0, fx, fy)
			w2 := edge(x0, y0, x1, y1, fx, fy)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			w0 *= invArea
			w1 *= invArea
			w2 *= invArea

			frag := shader.Fragment{
				ClipPos: lerp3Vec4(v0.ClipPos, v1.ClipPos, v2.ClipPos, w0, w1, w2),
				UV:      lerp3Vec2(v0.UV, v1.UV, v2.UV, w0, w1, w2),
				Color:   lerp3RGBA(v0.Color, v1.Color, v2.Color, w0, w1, w2),
			}
			out := b.pipeline.Pixel(frag, tex, b.sampler)
			b.blend(px, py, out)
		}
	}
}

// blend composites one shaded fragment into the target with
// SrcAlpha/InvSrcAlpha on color and One/Zero on alpha. sRGB targets
// blend in linear space, decoding the destination first; plain targets
// blend on stored values, matching GPU behavior for both format
// classes.
func (b *Backend) blend(x, y int, src shader.RGBA) {
	i := (y*b.target.Width + x) * 4
	pix := b.target.Pix

	a := src.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	inv := 1 - a

	if b.target.SRGB {
		dr := color.SRGBToLinearFast(pix[i])
		dg := color.SRGBToLinearFast(pix[i+1])
		db := color.SRGBToLinearFast(pix[i+2])
		pix[i] = color.LinearToSRGBFast(src.R*a + dr*inv)
		pix[i+1] = color.LinearToSRGBFast(src.G*a + dg*inv)
		pix[i+2] = color.LinearToSRGBFast(src.B*a + db*inv)
	} else {
		dr := float32(pix[i]) / 255
		dg := float32(pix[i+1]) / 255
		db := float32(pix[i+2]) / 255
		pix[i] = floatToByte(src.R*a + dr*inv)
		pix[i+1] = floatToByte(src.G*a + dg*inv)
		pix[i+2] = floatToByte(src.B*a + db*inv)
	}
	pix[i+3] = floatToByte(a)
}

func floatToByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

func lerp3Vec2(a, b, c shader.Vec2, wa, wb, wc float32) shader.Vec2 {
	return shader.Vec2{
		X: a.X*wa + b.X*wb + c.X*wc,
		Y: a.Y*wa + b.Y*wb + c.Y*wc,
	}
}

func lerp3Vec4(a, b, c shader.Vec4, wa, wb, wc float32) shader.Vec4 {
	return shader.Vec4{
		X: a.X*wa + b.X*wb + c.X*wc,
		Y: a.Y*wa + b.Y*wb + c.Y*wc,
		Z: a.Z*wa + b.Z*wb + c.Z*wc,
		W: a.W*wa + b.W*wb + c.W*wc,
	}
}

func lerp3RGBA(a, b, c shader.RGBA, wa, wb, wc float32) shader.RGBA {
	return shader.RGBA{
		R: a.R*wa + b.R*wb + c.R*wc,
		G: a.G*wa + b.G*wb + c.G*wc,
		B: a.B*wa + b.B*wb + c.B*wc,
		A: a.A*wa + b.A*wb + c.A*wc,
	}
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
