package material

import (
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/shader"
)

// BackgroundPipelineKey identifies the full-screen background pipeline.
const BackgroundPipelineKey = "background"

// BackgroundShaderSource is the full WGSL module of the background pass.
var BackgroundShaderSource = model.GPUVertexSource + GPUBackgroundUniformSource + backgroundShaderBody

// BackgroundPipeline builds the background pipeline. It neither tests nor writes depth,
// so whatever the scene draws afterwards lands on top.
func BackgroundPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(BackgroundPipelineKey,
		pipeline.WithVertexShader(shader.NewShader(BackgroundPipelineKey, shader.ShaderTypeVertex, BackgroundShaderSource)),
		pipeline.WithFragmentShader(shader.NewShader(BackgroundPipelineKey, shader.ShaderTypeFragment, BackgroundShaderSource)),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
	)
}

// BackgroundMaterial draws one image over the whole viewport through a UV transform.
// Its mesh is expected to be model.Plane(2, 2), which spans clip space.
type BackgroundMaterial struct {
	material
	uniform GPUBackgroundUniform
}

var _ Material = &BackgroundMaterial{}

// NewBackgroundMaterial creates the background material with an identity UV transform.
func NewBackgroundMaterial(options ...MaterialBuilderOption) *BackgroundMaterial {
	m := &BackgroundMaterial{
		material: newMaterial("background", BackgroundPipeline(), 1, options...),
	}
	m.uniform.SetUVTransform([9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1})
	return m
}

// SetTexture binds the image to draw. The provider stays owned by the caller.
func (m *BackgroundMaterial) SetTexture(provider bind_group_provider.BindGroupProvider) {
	m.setTexture(1, provider)
}

// Texture returns the bound image provider, or nil.
func (m *BackgroundMaterial) Texture() bind_group_provider.BindGroupProvider {
	return m.textures[0]
}

// SetUVTransform sets the column-major 3x3 transform applied to the plane's UVs.
func (m *BackgroundMaterial) SetUVTransform(transform [9]float32) {
	m.uniform.SetUVTransform(transform)
}

func (m *BackgroundMaterial) UniformWrites(_, _ [16]float32) []bind_group_provider.BufferWrite {
	return m.uniformWrite(m.uniform.Marshal())
}
