package color

// Lookup tables for byte-space conversions. The software backend
// encodes on write for sRGB targets, so the per-pixel cost matters;
// the tables replace Pow with an array read.

// sRGBToLinearLUT converts an sRGB byte to linear float32. 256 entries.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT converts linear float32 to an sRGB byte. 4096 entries
// give 12-bit precision, enough for 8-bit output.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255.0)
	}
	for i := range linearToSRGBLUT {
		linearToSRGBLUT[i] = clampAndRound(LinearToSRGB(float32(i) / 4095.0))
	}
}

// SRGBToLinearFast converts an sRGB byte to linear float32 via the LUT.
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts linear float32 to an sRGB byte via the LUT.
// Input outside [0,1] is clamped.
func LinearToSRGBFast(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}
