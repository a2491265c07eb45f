package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// SpherePipelineKey identifies the refraction sphere pipeline.
const SpherePipelineKey = "sphere"

// SphereShaderSource is the full WGSL module of the refraction sphere.
var SphereShaderSource = model.GPUVertexSource + GPUSphereUniformSource + sphereShaderBody

// SpherePipeline builds the refraction pipeline: group 0 uniforms, group 1 the scene
// texture sampled in screen space.
func SpherePipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(SpherePipelineKey,
		pipeline.WithVertexShader(shader.NewShader(SpherePipelineKey, shader.ShaderTypeVertex, SphereShaderSource)),
		pipeline.WithFragmentShader(shader.NewShader(SpherePipelineKey, shader.ShaderTypeFragment, SphereShaderSource)),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
}

// SphereMaterial refracts a screen-space texture through a wobbling surface.
type SphereMaterial struct {
	material
	uniform GPUSphereUniform

	r        renderer.Renderer
	scene    bind_group_provider.BindGroupProvider
	sceneTex *wgpu.TextureView
}

var _ Material = &SphereMaterial{}

// NewSphereMaterial creates the refraction material with zero time and refract power.
func NewSphereMaterial(options ...MaterialBuilderOption) *SphereMaterial {
	m := &SphereMaterial{
		material: newMaterial("sphere", SpherePipeline(), 1, options...),
	}
	m.scene = bind_group_provider.NewBindGroupProvider(m.name + " Scene Texture")
	m.setTexture(1, m.scene)
	return m
}

// Init registers the pipeline and creates the uniform buffer and the scene sampler. The
// scene texture bind group is created by the first SetSceneTexture.
func (m *SphereMaterial) Init(r renderer.Renderer) error {
	if err := m.material.Init(r); err != nil {
		return err
	}
	if err := r.InitSampler(m.scene, 1, common.ClampedLinearSampler); err != nil {
		return fmt.Errorf("material %s sampler: %w", m.name, err)
	}
	m.r = r
	return nil
}

// SetSceneTexture binds the texture sampled behind the sphere, rebuilding the bind group
// only when the view changes. The view is borrowed.
//
// Parameters:
//   - view: a render target view
//
// Returns:
//   - error: an error if the material is not initialized, view is nil or the bind group
//     could not be built
func (m *SphereMaterial) SetSceneTexture(view *wgpu.TextureView) error {
	if m.r == nil {
		return fmt.Errorf("material %s: not initialized", m.name)
	}
	if view == nil {
		return fmt.Errorf("material %s: nil scene texture", m.name)
	}
	if view == m.sceneTex {
		return nil
	}
	m.scene.SetBorrowedTextureView(0, view)
	m.scene.ReleaseBindGroup()
	if err := m.r.InitBindGroup(m.scene, m.pipeline.BindGroupLayoutDescriptor(1), nil, nil); err != nil {
		return fmt.Errorf("material %s scene texture: %w", m.name, err)
	}
	m.sceneTex = view
	return nil
}

// SetScreenCoord sets the framebuffer size used to map fragments to scene texels.
func (m *SphereMaterial) SetScreenCoord(size [2]float32) {
	m.uniform.ScreenCoord = size
}

// ScreenCoord returns the framebuffer size last set.
func (m *SphereMaterial) ScreenCoord() [2]float32 {
	return m.uniform.ScreenCoord
}

// SetTime sets the wobble clock in seconds.
func (m *SphereMaterial) SetTime(t float32) {
	m.uniform.Time = t
}

// Time returns the wobble clock in seconds.
func (m *SphereMaterial) Time() float32 {
	return m.uniform.Time
}

// SetRefractPower sets the refraction strength, clamped to 0..1.
func (m *SphereMaterial) SetRefractPower(power float32) {
	m.uniform.RefractPower = common.Clamp(power, 0, 1)
}

// RefractPower returns the refraction strength.
func (m *SphereMaterial) RefractPower() float32 {
	return m.uniform.RefractPower
}

func (m *SphereMaterial) UniformWrites(viewProj, model [16]float32) []bind_group_provider.BufferWrite {
	m.uniform.ViewProj = viewProj
	m.uniform.Model = model
	return m.uniformWrite(m.uniform.Marshal())
}

func (m *SphereMaterial) Release() {
	m.material.Release()
	m.scene.Release()
	m.sceneTex = nil
}
