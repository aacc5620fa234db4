// Package color provides sRGB transfer-function conversions shared by
// the uidraw backends. RGB components live in whichever space the
// surrounding code says; alpha is always linear and is never encoded.
package color

import "github.com/chewxy/math32"

// ColorF32 is a color with float32 components in [0,1].
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 is a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// SRGBToLinear converts an sRGB component to linear (the EOTF).
// Input and output are in [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (the OETF).
// Input and output are in [0,1]. Negative inputs take their magnitude
// through the power branch, matching the pixel stage.
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(math32.Abs(l), 1.0/2.4) - 0.055
}

// SRGBToLinearColor converts the RGB components of c to linear space.
func SRGBToLinearColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: SRGBToLinear(c.R),
		G: SRGBToLinear(c.G),
		B: SRGBToLinear(c.B),
		A: c.A,
	}
}

// LinearToSRGBColor converts the RGB components of c to sRGB space.
func LinearToSRGBColor(c ColorF32) ColorF32 {
	return ColorF32{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: c.A,
	}
}

// U8ToF32 maps each byte component [0,255] to float32 [0,1].
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

// F32ToU8 maps each float component to a byte with clamping and
// rounding.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{
		R: clampAndRound(c.R),
		G: clampAndRound(c.G),
		B: clampAndRound(c.B),
		A: clampAndRound(c.A),
	}
}

func clampAndRound(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
