// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uidraw"
	"github.com/gogpu/uidraw/shader"
)

// ErrNoDevice is returned when a Backend is built without a device or
// queue.
var ErrNoDevice = errors.New("wgpu: no device")

// gpuTexture is the GPU mirror of one pool texture: a uniform holding
// the sampler configuration and a storage buffer of packed texels,
// bound together.
type gpuTexture struct {
	config hal.Buffer
	texels hal.Buffer
	bind   hal.BindGroup
}

func (t *gpuTexture) destroy(device hal.Device) {
	if t.bind != nil {
		device.DestroyBindGroup(t.bind)
	}
	if t.texels != nil {
		device.DestroyBuffer(t.texels)
	}
	if t.config != nil {
		device.DestroyBuffer(t.config)
	}
}

// Backend renders uidraw draw calls into an offscreen color texture on
// a HAL device. The host owns the device; the backend never creates
// one.
type Backend struct {
	device hal.Device
	queue  hal.Queue

	format gputypes.TextureFormat
	space  shader.ColorSpace
	width  int
	height int

	vsModule   hal.ShaderModule
	fsModule   hal.ShaderModule
	texLayout  hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	colorTex  hal.Texture
	colorView hal.TextureView

	textures map[uidraw.TextureID]*gpuTexture
	sampler  shader.Sampler

	clearNext  bool
	clearValue gputypes.Color
}

// New builds a backend over a host-supplied device and queue. The
// pixel-stage variant is resolved from the target format here, once:
// sRGB-typed formats pair with the linear variant, everything else
// with the gamma variant.
func New(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, width, height int) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: bad target size %dx%d", width, height)
	}

	b := &Backend{
		device:    device,
		queue:     queue,
		format:    format,
		space:     uidraw.ColorSpaceForFormat(format),
		width:     width,
		height:    height,
		textures:  make(map[uidraw.TextureID]*gpuTexture),
		sampler:   shader.DefaultSampler(),
		clearNext: true,
	}
	if err := b.createPipeline(); err != nil {
		b.Destroy()
		return nil, err
	}
	if err := b.createTarget(); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// ColorSpace reports the pixel variant the backend's pipeline links.
func (b *Backend) ColorSpace() shader.ColorSpace { return b.space }

// Size reports the render target dimensions in pixels.
func (b *Backend) Size() (int, int) { return b.width, b.height }

// Clear schedules a clear with the given color at the start of the
// next Draw.
func (b *Backend) Clear(c gputypes.Color) {
	b.clearNext = true
	b.clearValue = c
}

// Destroy releases all GPU resources. Safe to call more than once.
func (b *Backend) Destroy() {
	if b.device == nil {
		return
	}
	for id, tex := range b.textures {
		tex.destroy(b.device)
		delete(b.textures, id)
	}
	b.destroyTarget()
	b.destroyPipeline()
}

func (b *Backend) createTarget() error {
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "uidraw_color",
		Size:          hal.Extent3D{Width: uint32(b.width), Height: uint32(b.height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        b.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	b.colorTex = tex

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "uidraw_color_view",
	})
	if err != nil {
		return fmt.Errorf("create color view: %w", err)
	}
	b.colorView = view
	return nil
}

func (b *Backend) destroyTarget() {
	if b.colorView != nil {
		b.device.DestroyTextureView(b.colorView)
		b.colorView = nil
	}
	if b.colorTex != nil {
		b.device.DestroyTexture(b.colorTex)
		b.colorTex = nil
	}
}

// Resize recreates the render target. Texture bindings survive.
func (b *Backend) Resize(width, height int) error {
	if width == b.width && height == b.height && b.colorTex != nil {
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: bad target size %dx%d", width, height)
	}
	b.destroyTarget()
	b.width = width
	b.height = height
	b.clearNext = true
	return b.createTarget()
}

// UpdateTexture implements uidraw.Backend: uploads the texture as a
// storage buffer of packed texels plus its sampler configuration. The
// pool re-sends the whole image after partial patches, so replacement
// is always whole.
func (b *Backend) UpdateTexture(id uidraw.TextureID, tex *shader.Texture) {
	if old, ok := b.textures[id]; ok {
		old.destroy(b.device)
		delete(b.textures, id)
	}

	gt, err := b.uploadTexture(tex)
	if err != nil {
		uidraw.Logger().Warn("texture upload failed", "texture", uint64(id), "error", err)
		return
	}
	b.textures[id] = gt
}

func (b *Backend) uploadTexture(tex *shader.Texture) (*gpuTexture, error) {
	cfgBytes := packTexConfig(shader.TexConfigFor(tex.Width, tex.Height, b.sampler))

	config, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "uidraw_tex_config", Size: uint64(len(cfgBytes)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create config buffer: %w", err)
	}

	gt := &gpuTexture{config: config}

	// RGBA8 texels in memory order are already the little-endian u32
	// layout the shader unpacks.
	texels, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "uidraw_tex_texels", Size: uint64(len(tex.Pix)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		gt.destroy(b.device)
		return nil, fmt.Errorf("create texel buffer: %w", err)
	}
	gt.texels = texels

	b.queue.WriteBuffer(config, 0, cfgBytes)
	b.queue.WriteBuffer(texels, 0, tex.Pix)

	bind, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "uidraw_tex_bind", Layout: b.texLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: config.NativeHandle(), Offset: 0, Size: uint64(len(cfgBytes))}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: texels.NativeHandle(), Offset: 0, Size: uint64(len(tex.Pix))}},
		},
	})
	if err != nil {
		gt.destroy(b.device)
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	gt.bind = bind
	return gt, nil
}

// FreeTexture implements uidraw.Backend.
func (b *Backend) FreeTexture(id uidraw.TextureID) {
	if gt, ok := b.textures[id]; ok {
		gt.destroy(b.device)
		delete(b.textures, id)
	}
}

// frameDraw is one recorded draw: an uploaded vertex buffer and the
// bind group of its texture.
type frameDraw struct {
	vertBuf   hal.Buffer
	vertCount uint32
	bind      hal.BindGroup
}

// Draw implements uidraw.Backend: clips and uploads each draw's
// triangles, encodes a single render pass over the offscreen target,
// submits, and waits for completion.
func (b *Backend) Draw(draws []uidraw.Draw) error {
	frame := make([]frameDraw, 0, len(draws))
	defer func() {
		for _, fd := range frame {
			if fd.vertBuf != nil {
				b.device.DestroyBuffer(fd.vertBuf)
			}
		}
	}()

	for _, d := range draws {
		gt, ok := b.textures[d.TextureID]
		if !ok {
			uidraw.Logger().Warn("draw references unknown texture",
				"texture", uint64(d.TextureID))
			continue
		}
		verts := expandAndClip(d, b.width, b.height)
		if len(verts) == 0 {
			continue
		}
		data := packVertices(verts)

		vb, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "uidraw_vertices", Size: uint64(len(data)),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		frame = append(frame, frameDraw{
			vertBuf:   vb,
			vertCount: uint32(len(verts)),
			bind:      gt.bind,
		})
		b.queue.WriteBuffer(vb, 0, data)
	}

	if len(frame) == 0 && !b.clearNext {
		return nil
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "uidraw_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("uidraw_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpLoad
	if b.clearNext {
		loadOp = gputypes.LoadOpClear
		b.clearNext = false
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "uidraw_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       b.colorView,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: b.clearValue,
		}},
	})

	rp.SetPipeline(b.pipeline)
	for _, fd := range frame {
		rp.SetBindGroup(0, fd.bind, nil)
		rp.SetVertexBuffer(0, fd.vertBuf, 0)
		rp.Draw(fd.vertCount, 1, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	return b.submitAndWait(cmdBuf)
}

func (b *Backend) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := b.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Pixels reads the render target back as tightly packed bytes in the
// target's own format, 4 bytes per pixel, row-major.
func (b *Backend) Pixels() ([]byte, error) {
	// Copy pitch must be 256-byte aligned for WebGPU and DX12.
	bytesPerRow := uint32(b.width) * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(b.height)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "uidraw_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "uidraw_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("uidraw_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// The copy requires the texture in copy-source layout; transition
	// there and back so the next frame's pass stays valid.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(b.colorTex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: uint32(b.height)},
		TextureBase:  hal.ImageCopyTexture{Texture: b.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: uint32(b.width), Height: uint32(b.height), DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	if err := b.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := b.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	if alignedBytesPerRow == bytesPerRow {
		return readback[:uint64(bytesPerRow)*uint64(b.height)], nil
	}
	tight := make([]byte, uint64(bytesPerRow)*uint64(b.height))
	for row := 0; row < b.height; row++ {
		src := row * int(alignedBytesPerRow)
		dst := row * int(bytesPerRow)
		copy(tight[dst:dst+int(bytesPerRow)], readback[src:src+int(bytesPerRow)])
	}
	return tight, nil
}

var _ uidraw.Backend = (*Backend)(nil)

// packVertices serializes vertices into the pipeline's 32-byte layout.
func packVertices(verts []shader.Vertex) []byte {
	data := make([]byte, len(verts)*vertexStride)
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(f))
		off += 4
	}
	for _, v := range verts {
		put(v.Pos.X)
		put(v.Pos.Y)
		put(v.UV.X)
		put(v.UV.Y)
		put(v.Color.R)
		put(v.Color.G)
		put(v.Color.B)
		put(v.Color.A)
	}
	return data
}

// packTexConfig serializes the sampler uniform to its WGSL layout.
func packTexConfig(cfg shader.TexConfig) []byte {
	data := make([]byte, 48)
	binary.LittleEndian.PutUint32(data[0:], cfg.Width)
	binary.LittleEndian.PutUint32(data[4:], cfg.Height)
	binary.LittleEndian.PutUint32(data[8:], cfg.FilterMode)
	binary.LittleEndian.PutUint32(data[12:], cfg.AddressU)
	binary.LittleEndian.PutUint32(data[16:], cfg.AddressV)
	for i, f := range cfg.Border {
		binary.LittleEndian.PutUint32(data[32+i*4:], math.Float32bits(f))
	}
	return data
}
