// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "testing"

const spirvMagic = 0x07230203

func TestCompileVertex(t *testing.T) {
	code, err := CompileVertex()
	if err != nil {
		t.Fatalf("CompileVertex: %v", err)
	}
	if len(code) == 0 {
		t.Fatal("empty SPIR-V")
	}
	if code[0] != spirvMagic {
		t.Errorf("magic = %#x, want %#x", code[0], spirvMagic)
	}
}

// Each pixel variant compiles to its own independent module.
func TestCompilePixelVariants(t *testing.T) {
	lin, err := CompilePixel(Linear)
	if err != nil {
		t.Fatalf("CompilePixel(Linear): %v", err)
	}
	gam, err := CompilePixel(Gamma)
	if err != nil {
		t.Fatalf("CompilePixel(Gamma): %v", err)
	}
	if lin[0] != spirvMagic || gam[0] != spirvMagic {
		t.Error("bad SPIR-V magic")
	}

	same := len(lin) == len(gam)
	if same {
		for i := range lin {
			if lin[i] != gam[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("linear and gamma variants compiled to identical modules")
	}
}
