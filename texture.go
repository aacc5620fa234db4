// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package uidraw

import "github.com/gogpu/uidraw/shader"

// TextureID identifies a texture managed by the pool. IDs are assigned
// by the UI host; the pool only tracks them.
type TextureID uint64

// ImageKind says how an Image's payload is encoded.
type ImageKind int

const (
	// ImageColor carries RGBA8 pixels, 4 bytes per texel.
	ImageColor ImageKind = iota
	// ImageFont carries float32 coverage, one value per texel,
	// converted to white with premultiplied alpha on upload.
	ImageFont
)

// Image is pixel data for a texture update.
type Image struct {
	Width  int
	Height int
	Kind   ImageKind

	// Pixels holds Width*Height*4 bytes when Kind is ImageColor.
	Pixels []byte
	// Coverage holds Width*Height values when Kind is ImageFont.
	Coverage []float32
}

// TextureUpdate creates, replaces, or patches one texture. A nil Pos
// replaces the whole texture (creating it if needed); a non-nil Pos
// patches the region starting at that texel, which requires the
// texture to exist already.
type TextureUpdate struct {
	ID    TextureID
	Image Image
	Pos   *[2]int
}

// TexturePool keeps a CPU copy of every live texture so partial
// updates can patch in place before the backend re-uploads.
type TexturePool struct {
	textures map[TextureID]*shader.Texture
}

// NewTexturePool returns an empty pool.
func NewTexturePool() *TexturePool {
	return &TexturePool{textures: make(map[TextureID]*shader.Texture)}
}

// Get returns the CPU copy of a texture, if it exists.
func (p *TexturePool) Get(id TextureID) (*shader.Texture, bool) {
	t, ok := p.textures[id]
	return t, ok
}

// Len reports the number of live textures.
func (p *TexturePool) Len() int { return len(p.textures) }

// Apply lands a frame's texture changes: updates first, then frees.
// Every touched texture is pushed to the backend. Updates addressing
// unknown textures are warnings, not errors; a malformed frame must
// not take the whole renderer down.
func (p *TexturePool) Apply(backend Backend, updates []TextureUpdate, frees []TextureID) {
	for _, u := range updates {
		if u.Pos == nil {
			tex := imageToTexture(u.Image)
			p.textures[u.ID] = tex
			backend.UpdateTexture(u.ID, tex)
			continue
		}
		tex, ok := p.textures[u.ID]
		if !ok {
			Logger().Warn("partial update to unknown texture", "texture", uint64(u.ID))
			continue
		}
		if !patchTexture(tex, u.Image, u.Pos[0], u.Pos[1]) {
			Logger().Warn("partial update outside texture bounds",
				"texture", uint64(u.ID),
				"x", u.Pos[0], "y", u.Pos[1],
				"w", u.Image.Width, "h", u.Image.Height)
			continue
		}
		backend.UpdateTexture(u.ID, tex)
	}

	for _, id := range frees {
		if _, ok := p.textures[id]; !ok {
			Logger().Warn("free of unknown texture", "texture", uint64(id))
			continue
		}
		delete(p.textures, id)
		backend.FreeTexture(id)
	}
}

// imageToTexture converts update payloads to RGBA8. Font coverage
// becomes white with premultiplied alpha, so glyphs tint cleanly when
// multiplied by the vertex color.
func imageToTexture(img Image) *shader.Texture {
	tex := shader.NewTexture(img.Width, img.Height)
	switch img.Kind {
	case ImageFont:
		for i, a := range img.Coverage {
			if i*4+3 >= len(tex.Pix) {
				break
			}
			tex.Pix[i*4] = 255
			tex.Pix[i*4+1] = 255
			tex.Pix[i*4+2] = 255
			tex.Pix[i*4+3] = coverageToByte(a)
		}
	default:
		copy(tex.Pix, img.Pixels)
	}
	return tex
}

func coverageToByte(a float32) byte {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return byte(a*255 + 0.5)
}

// patchTexture writes img into tex at (x, y). Returns false if the
// region does not fit.
func patchTexture(tex *shader.Texture, img Image, x, y int) bool {
	if x < 0 || y < 0 || x+img.Width > tex.Width || y+img.Height > tex.Height {
		return false
	}
	patch := imageToTexture(img)
	for row := 0; row < img.Height; row++ {
		dst := ((y+row)*tex.Width + x) * 4
		src := row * img.Width * 4
		copy(tex.Pix[dst:dst+img.Width*4], patch.Pix[src:src+img.Width*4])
	}
	return true
}
