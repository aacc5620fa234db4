// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package uidraw

import (
	"testing"

	"github.com/gogpu/uidraw/shader"
)

func TestPoolWholeUpdateCreates(t *testing.T) {
	b := newRecordingBackend()
	p := NewTexturePool()

	p.Apply(b, []TextureUpdate{{
		ID: 7,
		Image: Image{
			Width: 2, Height: 1, Kind: ImageColor,
			Pixels: []byte{255, 0, 0, 255, 0, 255, 0, 255},
		},
	}}, nil)

	tex, ok := p.Get(7)
	if !ok {
		t.Fatal("texture not in pool")
	}
	if tex.Width != 2 || tex.Height != 1 {
		t.Errorf("size = %dx%d", tex.Width, tex.Height)
	}
	if got := tex.Texel(1, 0); got != (shader.RGBA{G: 1, A: 1}) {
		t.Errorf("texel(1,0) = %v, want green", got)
	}
	if b.textures[7] != tex {
		t.Error("backend did not receive the pool copy")
	}
}

// Font coverage uploads as white with premultiplied alpha.
func TestPoolFontConversion(t *testing.T) {
	b := newRecordingBackend()
	p := NewTexturePool()

	p.Apply(b, []TextureUpdate{{
		ID: 1,
		Image: Image{
			Width: 2, Height: 1, Kind: ImageFont,
			Coverage: []float32{0, 0.5},
		},
	}}, nil)

	tex, _ := p.Get(1)
	if got := tex.Pix[3]; got != 0 {
		t.Errorf("alpha of zero coverage = %d", got)
	}
	if tex.Pix[4] != 255 || tex.Pix[5] != 255 || tex.Pix[6] != 255 {
		t.Errorf("font texel not white: %v", tex.Pix[4:7])
	}
	if got := tex.Pix[7]; got != 128 {
		t.Errorf("alpha of 0.5 coverage = %d, want 128", got)
	}
}

func TestPoolPartialUpdatePatches(t *testing.T) {
	b := newRecordingBackend()
	p := NewTexturePool()

	p.Apply(b, []TextureUpdate{{
		ID: 1,
		Image: Image{
			Width: 4, Height: 4, Kind: ImageFont,
			Coverage: make([]float32, 16),
		},
	}}, nil)

	pos := [2]int{1, 2}
	p.Apply(b, []TextureUpdate{{
		ID:  1,
		Pos: &pos,
		Image: Image{
			Width: 2, Height: 1, Kind: ImageFont,
			Coverage: []float32{1, 1},
		},
	}}, nil)

	tex, _ := p.Get(1)
	if got := tex.Texel(1, 2); got != (shader.RGBA{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("patched texel = %v", got)
	}
	if got := tex.Texel(0, 2); got.A != 0 {
		t.Errorf("neighbor texel touched: %v", got)
	}
}

func TestPoolPartialUpdateUnknownTexture(t *testing.T) {
	b := newRecordingBackend()
	p := NewTexturePool()

	pos := [2]int{0, 0}
	p.Apply(b, []TextureUpdate{{
		ID: 42, Pos: &pos,
		Image: Image{Width: 1, Height: 1, Kind: ImageFont, Coverage: []float32{1}},
	}}, nil)

	if p.Len() != 0 {
		t.Error("unknown partial update created a texture")
	}
	if len(b.textures) != 0 {
		t.Error("backend received a texture for an unknown partial update")
	}
}

func TestPoolPartialUpdateOutOfBounds(t *testing.T) {
	b := newRecordingBackend()
	p := NewTexturePool()

	p.Apply(b, []TextureUpdate{{
		ID:    1,
		Image: Image{Width: 2, Height: 2, Kind: ImageColor, Pixels: make([]byte, 16)},
	}}, nil)

	pos := [2]int{1, 1}
	p.Apply(b, []TextureUpdate{{
		ID: 1, Pos: &pos,
		Image: Image{Width: 2, Height: 2, Kind: ImageColor, Pixels: make([]byte, 16)},
	}}, nil)

	tex, _ := p.Get(1)
	for i, v := range tex.Pix {
		if v != 0 {
			t.Fatalf("out-of-bounds patch wrote byte %d", i)
		}
	}
}

func TestPoolFree(t *testing.T) {
	b := newRecordingBackend()
	p := NewTexturePool()

	p.Apply(b, []TextureUpdate{{
		ID:    1,
		Image: Image{Width: 1, Height: 1, Kind: ImageColor, Pixels: make([]byte, 4)},
	}}, nil)
	p.Apply(b, nil, []TextureID{1, 99}) // 99 unknown: warn, not panic

	if p.Len() != 0 {
		t.Error("texture not freed from pool")
	}
	if len(b.textures) != 0 {
		t.Error("texture not freed from backend")
	}
}
