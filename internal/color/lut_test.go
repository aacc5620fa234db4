package color

import (
	"math"
	"testing"
)

// The LUT fast paths must track the exact transfer functions.
func TestSRGBToLinearFastAccuracy(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := SRGBToLinearFast(uint8(i))
		exact := SRGBToLinear(float32(i) / 255.0)
		if math.Abs(float64(fast-exact)) > 1e-4 {
			t.Errorf("sRGB %d: fast=%f, exact=%f", i, fast, exact)
		}
	}
}

func TestLinearToSRGBFastAccuracy(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000.0
		fast := int(LinearToSRGBFast(l))
		exact := int(clampAndRound(LinearToSRGB(l)))
		diff := fast - exact
		if diff < 0 {
			diff = -diff
		}
		// 12-bit quantization allows one byte of rounding slack.
		if diff > 1 {
			t.Errorf("linear %f: fast=%d, exact=%d", l, fast, exact)
		}
	}
}

func TestByteRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		back := int(LinearToSRGBFast(SRGBToLinearFast(uint8(i))))
		diff := back - i
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			t.Errorf("round trip %d -> %d", i, back)
		}
	}
}

func TestLinearToSRGBFastClamps(t *testing.T) {
	if got := LinearToSRGBFast(-1); got != 0 {
		t.Errorf("LinearToSRGBFast(-1) = %d, want 0", got)
	}
	if got := LinearToSRGBFast(2); got != 255 {
		t.Errorf("LinearToSRGBFast(2) = %d, want 255", got)
	}
}

func BenchmarkLinearToSRGBFast(b *testing.B) {
	var sink uint8
	for i := 0; i < b.N; i++ {
		sink = LinearToSRGBFast(float32(i&1023) / 1023.0)
	}
	_ = sink
}

func BenchmarkLinearToSRGBExact(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink = LinearToSRGB(float32(i&1023) / 1023.0)
	}
	_ = sink
}
