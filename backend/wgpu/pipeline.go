// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uidraw/shader"
)

// vertexStride is the byte stride per vertex in the UI pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 32 bytes per vertex.
const vertexStride = 32

// uiVertexLayout returns the vertex buffer layout for the UI pipeline.
func uiVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// uiBlendState is the straight-alpha UI blend: SrcAlpha/InvSrcAlpha on
// color, One/Zero on alpha.
func uiBlendState() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorZero,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// createPipeline compiles the vertex stage and the one pixel variant
// matching the backend's color space, then builds the render pipeline.
// The variant choice happens here, at pipeline construction, and
// nowhere else.
func (b *Backend) createPipeline() error {
	vsCode, err := shader.CompileVertex()
	if err != nil {
		return fmt.Errorf("compile vertex stage: %w", err)
	}
	fsCode, err := shader.CompilePixel(b.space)
	if err != nil {
		return fmt.Errorf("compile %v pixel stage: %w", b.space, err)
	}

	vsModule, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "uidraw_vs",
		Source: hal.ShaderSource{SPIRV: vsCode},
	})
	if err != nil {
		return fmt.Errorf("create vertex module: %w", err)
	}
	b.vsModule = vsModule

	fsModule, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "uidraw_fs_" + b.space.String(),
		Source: hal.ShaderSource{SPIRV: fsCode},
	})
	if err != nil {
		return fmt.Errorf("create pixel module: %w", err)
	}
	b.fsModule = fsModule

	texLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "uidraw_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture layout: %w", err)
	}
	b.texLayout = texLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "uidraw_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.texLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	blend := uiBlendState()
	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "uidraw_pipeline_" + b.space.String(),
		Layout: b.pipeLayout,
		Vertex: hal.VertexState{
			Module:     b.vsModule,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    uiVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     b.fsModule,
			EntryPoint: shader.PixelEntryPoint(b.space),
			Targets: []gputypes.ColorTargetState{
				{
					Format:    b.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	b.pipeline = pipeline
	return nil
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (b *Backend) destroyPipeline() {
	if b.pipeline != nil {
		b.device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.texLayout != nil {
		b.device.DestroyBindGroupLayout(b.texLayout)
		b.texLayout = nil
	}
	if b.fsModule != nil {
		b.device.DestroyShaderModule(b.fsModule)
		b.fsModule = nil
	}
	if b.vsModule != nil {
		b.device.DestroyShaderModule(b.vsModule)
		b.vsModule = nil
	}
}
