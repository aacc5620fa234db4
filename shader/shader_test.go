// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"math"
	"testing"
)

// whiteTexture returns a 1x1 opaque white texture, the identity element
// for the pixel stage's multiply.
func whiteTexture() *Texture {
	t := NewTexture(1, 1)
	t.SetTexel(0, 0, RGBA{R: 1, G: 1, B: 1, A: 1})
	return t
}

func TestVertexStagePassthrough(t *testing.T) {
	tests := []struct {
		name string
		in   Vertex
	}{
		{"origin", Vertex{}},
		{"corner", Vertex{Pos: Vec2{X: -1, Y: 1}, UV: Vec2{X: 0, Y: 1}, Color: RGBA{R: 1, A: 1}}},
		{"offcenter", Vertex{Pos: Vec2{X: 0.25, Y: -0.75}, UV: Vec2{X: 0.5, Y: 0.5}, Color: RGBA{R: 0.1, G: 0.2, B: 0.3, A: 0.4}}},
		{"outside clip", Vertex{Pos: Vec2{X: 3.5, Y: -8}, UV: Vec2{X: 2, Y: -1}, Color: RGBA{R: 2, G: -1, B: 0, A: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := VertexStage(tt.in)
			if out.ClipPos.X != tt.in.Pos.X || out.ClipPos.Y != tt.in.Pos.Y {
				t.Errorf("ClipPos xy = (%v, %v), want (%v, %v)",
					out.ClipPos.X, out.ClipPos.Y, tt.in.Pos.X, tt.in.Pos.Y)
			}
			if out.ClipPos.Z != 0 || out.ClipPos.W != 1 {
				t.Errorf("ClipPos zw = (%v, %v), want (0, 1)", out.ClipPos.Z, out.ClipPos.W)
			}
			if out.UV != tt.in.UV {
				t.Errorf("UV = %v, want %v", out.UV, tt.in.UV)
			}
			if out.Color != tt.in.Color {
				t.Errorf("Color = %v, want %v", out.Color, tt.in.Color)
			}
		})
	}
}

func TestVertexStageNaNPropagates(t *testing.T) {
	nan := float32(math.NaN())
	out := VertexStage(Vertex{Pos: Vec2{X: nan, Y: 2}})
	if !math.IsNaN(float64(out.ClipPos.X)) {
		t.Errorf("ClipPos.X = %v, want NaN", out.ClipPos.X)
	}
	if out.ClipPos.Y != 2 {
		t.Errorf("ClipPos.Y = %v, want 2", out.ClipPos.Y)
	}
}

// The two pixel variants must differ by exactly the transfer function:
// Gamma(x) == EncodeSRGB(Linear(x)) on identical inputs.
func TestGammaIsEncodedLinear(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetTexel(0, 0, RGBA{R: 1, G: 0.5, B: 0.25, A: 1})
	tex.SetTexel(1, 0, RGBA{R: 0, G: 1, B: 0, A: 0.5})
	tex.SetTexel(0, 1, RGBA{R: 0.1, G: 0.1, B: 0.1, A: 0.1})
	tex.SetTexel(1, 1, RGBA{R: 1, G: 1, B: 1, A: 0})
	s := DefaultSampler()

	for _, uv := range []Vec2{{0.25, 0.25}, {0.75, 0.25}, {0.5, 0.5}, {0.9, 0.9}, {-0.2, 0.5}} {
		for _, col := range []RGBA{{1, 1, 1, 1}, {0.5, 0.5, 0.5, 1}, {0.2, 0.9, 0.001, 0.3}} {
			frag := Fragment{UV: uv, Color: col}
			lin := PixelLinear(frag, tex, s)
			gam := PixelGamma(frag, tex, s)
			want := EncodeSRGB(lin)
			if gam != want {
				t.Errorf("uv=%v color=%v: gamma = %v, want encode(linear) = %v", uv, col, gam, want)
			}
		}
	}
}

func TestPixelStageBlackRoundTrip(t *testing.T) {
	tex := whiteTexture()
	frag := Fragment{UV: Vec2{0.5, 0.5}, Color: RGBA{R: 0, G: 0, B: 0, A: 1}}
	for _, space := range []ColorSpace{Gamma, Linear} {
		out := NewPipeline(space).Pixel(frag, tex, DefaultSampler())
		if out.R != 0 || out.G != 0 || out.B != 0 {
			t.Errorf("%v: black in, got %v", space, out)
		}
		if out.A != 1 {
			t.Errorf("%v: alpha = %v, want 1", space, out.A)
		}
	}
}

func TestPixelStageMidGray(t *testing.T) {
	tex := whiteTexture()
	frag := Fragment{UV: Vec2{0.5, 0.5}, Color: RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}}
	s := DefaultSampler()

	lin := PixelLinear(frag, tex, s)
	if !closeTo(lin.R, 0.5, 1e-6) {
		t.Errorf("linear R = %v, want 0.5", lin.R)
	}

	gam := PixelGamma(frag, tex, s)
	if !closeTo(gam.R, 0.735357, 1e-4) {
		t.Errorf("gamma R = %v, want ~0.735357", gam.R)
	}
	if gam.A != 1 {
		t.Errorf("gamma A = %v, want 1", gam.A)
	}
}

// Fully transparent fragments must stay fully transparent through every
// variant: alpha is multiplied, never encoded.
func TestPixelStageAlphaZero(t *testing.T) {
	tex := whiteTexture()
	frag := Fragment{UV: Vec2{0.5, 0.5}, Color: RGBA{R: 0.8, G: 0.4, B: 0.2, A: 0}}
	for _, space := range []ColorSpace{Gamma, Linear} {
		out := NewPipeline(space).Pixel(frag, tex, DefaultSampler())
		if out.A != 0 {
			t.Errorf("%v: alpha = %v, want 0", space, out.A)
		}
	}
}

func TestPixelStageModulatesTexture(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.SetTexel(0, 0, RGBA{R: 1, G: 0.5, B: 0.25, A: 0.5})
	frag := Fragment{UV: Vec2{0.5, 0.5}, Color: RGBA{R: 0.5, G: 1, B: 1, A: 0.5}}

	out := PixelLinear(frag, tex, DefaultSampler())
	want := RGBA{R: 0.5, G: 0.5, B: 0.25, A: 0.25}
	if !rgbaCloseTo(out, want, 0.01) {
		t.Errorf("out = %v, want ~%v", out, want)
	}
}

func TestNewPipelineResolvesVariant(t *testing.T) {
	if got := NewPipeline(Linear).ColorSpace(); got != Linear {
		t.Errorf("ColorSpace() = %v, want Linear", got)
	}
	if got := NewPipeline(Gamma).ColorSpace(); got != Gamma {
		t.Errorf("ColorSpace() = %v, want Gamma", got)
	}

	// The resolved program must match the free function on shared inputs.
	tex := whiteTexture()
	frag := Fragment{UV: Vec2{0.5, 0.5}, Color: RGBA{R: 0.3, G: 0.6, B: 0.9, A: 0.7}}
	s := DefaultSampler()
	if got, want := NewPipeline(Linear).Pixel(frag, tex, s), PixelLinear(frag, tex, s); got != want {
		t.Errorf("Linear pipeline = %v, want %v", got, want)
	}
	if got, want := NewPipeline(Gamma).Pixel(frag, tex, s), PixelGamma(frag, tex, s); got != want {
		t.Errorf("Gamma pipeline = %v, want %v", got, want)
	}
}

func TestColorSpaceString(t *testing.T) {
	if Gamma.String() != "gamma" || Linear.String() != "linear" {
		t.Errorf("String() = %q, %q", Gamma.String(), Linear.String())
	}
}

func closeTo(got, want, tol float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func rgbaCloseTo(got, want RGBA, tol float32) bool {
	return closeTo(got.R, want.R, tol) && closeTo(got.G, want.G, tol) &&
		closeTo(got.B, want.B, tol) && closeTo(got.A, want.A, tol)
}
