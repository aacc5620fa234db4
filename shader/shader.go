// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// Vec2 is a 2-component float32 vector.
type Vec2 struct {
	X, Y float32
}

// Vec4 is a 4-component float32 vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// RGBA is a float32 color with straight (non-premultiplied) alpha.
// Channels are nominally in [0, 1] but are not clamped anywhere in the
// pipeline; out-of-range values flow through arithmetic unchanged.
type RGBA struct {
	R, G, B, A float32
}

// Mul returns the component-wise product of two colors. Alpha multiplies
// like any other channel.
func (c RGBA) Mul(o RGBA) RGBA {
	return RGBA{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Vertex is one element of the UI mesh handed to the vertex stage.
// Positions arrive already transformed to clip space by the host; the
// stage adds no projection of its own.
type Vertex struct {
	Pos   Vec2 // clip-space x, y
	UV    Vec2 // texture coordinates, [0,1] over the atlas
	Color RGBA // linear-space tint, straight alpha
}

// VertexOut is the vertex-stage output, interpolated by the rasterizer.
type VertexOut struct {
	ClipPos Vec4
	UV      Vec2
	Color   RGBA
}

// Fragment is one rasterized sample handed to the pixel stage. ClipPos
// carries the interpolated position for completeness; the pixel stage
// does not read it.
type Fragment struct {
	ClipPos Vec4
	UV      Vec2
	Color   RGBA
}

// VertexStage forwards a vertex into clip space. The z component is
// pinned to 0 and w to 1; x, y, UV and color pass through bit-exact.
// It cannot fail: NaN or infinite inputs propagate to the output.
func VertexStage(v Vertex) VertexOut {
	return VertexOut{
		ClipPos: Vec4{X: v.Pos.X, Y: v.Pos.Y, Z: 0, W: 1},
		UV:      v.UV,
		Color:   v.Color,
	}
}

// ColorSpace selects which pixel-stage variant a pipeline is built with.
// The choice is a property of the render target: targets that encode on
// write (sRGB-typed formats) take Linear, targets that store values
// verbatim take Gamma. It is fixed at pipeline construction and never
// re-evaluated per fragment.
type ColorSpace int

const (
	// Gamma encodes color channels with the sRGB transfer function
	// before output. Alpha is never encoded.
	Gamma ColorSpace = iota
	// Linear outputs the tint-times-texture product unmodified.
	Linear
)

func (cs ColorSpace) String() string {
	switch cs {
	case Gamma:
		return "gamma"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
}

// Program is a compiled pixel stage: a pure function from a fragment and
// its bound resources to an output color. The texture and sampler are
// explicit arguments, so a Program holds no ambient state and the same
// value may be shared across goroutines.
type Program func(frag Fragment, tex *Texture, s Sampler) RGBA

// shadeCommon is the variant-independent part of the pixel stage: sample
// the texture at the fragment's UV and multiply component-wise with the
// interpolated vertex color, alpha included.
func shadeCommon(frag Fragment, tex *Texture, s Sampler) RGBA {
	return frag.Color.Mul(tex.Sample(s, frag.UV))
}

// PixelLinear is the pixel stage for targets that gamma-encode on write.
func PixelLinear(frag Fragment, tex *Texture, s Sampler) RGBA {
	return shadeCommon(frag, tex, s)
}

// PixelGamma is the pixel stage for targets that store values verbatim.
// Its output equals EncodeSRGB of PixelLinear's output on the same
// inputs; the two variants differ in nothing else.
func PixelGamma(frag Fragment, tex *Texture, s Sampler) RGBA {
	return EncodeSRGB(shadeCommon(frag, tex, s))
}

// Pipeline pairs the vertex stage with one resolved pixel variant.
type Pipeline struct {
	space ColorSpace
	pixel Program
}

// NewPipeline resolves the pixel-stage variant for the given color space.
// Unknown values fall back to Gamma, the safe choice for plain RGBA8
// targets.
func NewPipeline(space ColorSpace) *Pipeline {
	p := &Pipeline{space: space}
	switch space {
	case Linear:
		p.pixel = PixelLinear
	default:
		p.pixel = PixelGamma
	}
	return p
}

// ColorSpace reports the variant the pipeline was built with.
func (p *Pipeline) ColorSpace() ColorSpace { return p.space }

// Vertex runs the vertex stage.
func (p *Pipeline) Vertex(v Vertex) VertexOut { return VertexStage(v) }

// Pixel runs the resolved pixel variant.
func (p *Pipeline) Pixel(frag Fragment, tex *Texture, s Sampler) RGBA {
	return p.pixel(frag, tex, s)
}
