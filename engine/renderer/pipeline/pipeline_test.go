package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

struct Uniforms {
    mvp: mat4x4<f32>,
    progress: f32,
};

@group(0) @binding(0) var<uniform> u: Uniforms;
@group(2) @binding(1) var nextSampler: sampler;
@group(2) @binding(0) var nextTex: texture_2d<f32>;

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = u.mvp * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(nextTex, nextSampler, in.uv) * u.progress;
}
`

func newTestPipeline(opts ...PipelineBuilderOption) Pipeline {
	opts = append([]PipelineBuilderOption{
		WithVertexShader(shader.NewShader("screen", shader.ShaderTypeVertex, source)),
		WithFragmentShader(shader.NewShader("screen", shader.ShaderTypeFragment, source)),
	}, opts...)
	return NewPipeline("screen", opts...)
}

func TestNewPipelineDefaults(t *testing.T) {
	p := newTestPipeline()
	assert.Equal(t, "screen", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	assert.NotPanics(t, p.Release)
}

func TestPipelineOptions(t *testing.T) {
	p := newTestPipeline(
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
	)
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, shader.ShaderTypeFragment, p.Shader(shader.ShaderTypeFragment).ShaderType())
}

func TestMergedLayoutVisibility(t *testing.T) {
	p := newTestPipeline()
	assert.Equal(t, 3, p.GroupCount())

	uniforms := p.BindGroupLayoutDescriptor(0)
	require.Len(t, uniforms.Entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, uniforms.Entries[0].Visibility)
	assert.Equal(t, "screen", uniforms.Label)

	textures := p.BindGroupLayoutDescriptor(2)
	require.Len(t, textures.Entries, 2)
	assert.Equal(t, uint32(0), textures.Entries[0].Binding)
	assert.Equal(t, uint32(1), textures.Entries[1].Binding)

	assert.Empty(t, p.BindGroupLayoutDescriptor(1).Entries)
}

func TestMergeBindGroupLayoutsDisjoint(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 1, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}

	merged := mergeBindGroupLayouts("m", vertex, fragment)
	require.Len(t, merged, 2)
	require.Len(t, merged[0].Entries, 2)
	assert.Equal(t, wgpu.ShaderStageFragment, merged[0].Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex, merged[0].Entries[1].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex, vertex[0].Entries[0].Visibility, "inputs untouched")
}
