package material

import (
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/shader"
)

// ScreenPipelineKey identifies the crossfade plane pipeline.
const ScreenPipelineKey = "screen"

// ScreenShaderSource is the full WGSL module of the crossfade plane.
var ScreenShaderSource = model.GPUVertexSource + GPUScreenUniformSource + screenShaderBody

// ScreenPipeline builds the crossfade plane pipeline: group 0 uniforms, group 1 the
// current image, group 2 the next image.
func ScreenPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(ScreenPipelineKey,
		pipeline.WithVertexShader(shader.NewShader(ScreenPipelineKey, shader.ShaderTypeVertex, ScreenShaderSource)),
		pipeline.WithFragmentShader(shader.NewShader(ScreenPipelineKey, shader.ShaderTypeFragment, ScreenShaderSource)),
	)
}

// ScreenMaterial blends two cover-fitted images by a progress value.
type ScreenMaterial struct {
	material
	uniform GPUScreenUniform
}

var _ Material = &ScreenMaterial{}

// NewScreenMaterial creates the crossfade material. Textures are usually supplied with
// SetTextures once images are uploaded.
//
// Parameters:
//   - options: builder options; WithTexture(1, ...) and WithTexture(2, ...) preset the images
//
// Returns:
//   - *ScreenMaterial: the material, not yet initialized on the GPU
func NewScreenMaterial(options ...MaterialBuilderOption) *ScreenMaterial {
	return &ScreenMaterial{
		material: newMaterial("screen", ScreenPipeline(), 2, options...),
		uniform: GPUScreenUniform{
			CurrentUVScale: [2]float32{1, 1},
			NextUVScale:    [2]float32{1, 1},
		},
	}
}

// SetTextures swaps the bound images. The providers are shared and stay owned by the caller.
//
// Parameters:
//   - current: the image faded out
//   - next: the image faded in
func (m *ScreenMaterial) SetTextures(current, next bind_group_provider.BindGroupProvider) {
	m.setTexture(1, current)
	m.setTexture(2, next)
}

// SetCurrentUVScale sets the cover scale of the current image.
func (m *ScreenMaterial) SetCurrentUVScale(scale [2]float32) {
	m.uniform.CurrentUVScale = scale
}

// SetNextUVScale sets the cover scale of the next image.
func (m *ScreenMaterial) SetNextUVScale(scale [2]float32) {
	m.uniform.NextUVScale = scale
}

// UVScales returns the current and next cover scales.
func (m *ScreenMaterial) UVScales() (current, next [2]float32) {
	return m.uniform.CurrentUVScale, m.uniform.NextUVScale
}

// SetProgress sets the blend factor, 0 showing only the current image.
func (m *ScreenMaterial) SetProgress(progress float32) {
	m.uniform.Progress = progress
}

// Progress returns the blend factor.
func (m *ScreenMaterial) Progress() float32 {
	return m.uniform.Progress
}

func (m *ScreenMaterial) UniformWrites(viewProj, model [16]float32) []bind_group_provider.BufferWrite {
	m.uniform.ViewProj = viewProj
	m.uniform.Model = model
	return m.uniformWrite(m.uniform.Marshal())
}
