package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
)

// material is the part shared by every Material: a pipeline, a uniform bind group at
// group 0 and the texture bind groups bound after it.
type material struct {
	name     string
	pipeline pipeline.Pipeline
	uniforms bind_group_provider.BindGroupProvider

	// textures are bound at groups 1..n in order
	textures []bind_group_provider.BindGroupProvider
}

// Material defines what a draw call needs from a surface description: the pipeline key,
// the bind groups in group order and the uniform bytes for the current transforms.
//
// Materials are created CPU-side first; Init registers the pipeline and creates the
// uniform buffer once a Renderer exists.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// PipelineKey retrieves the key of the render pipeline this material draws with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroups returns the providers to bind, index i at group i. The uniform provider
	// is always first.
	//
	// Returns:
	//   - []bind_group_provider.BindGroupProvider: the providers in group order
	BindGroups() []bind_group_provider.BindGroupProvider

	// UniformWrites stages the material's uniform block for a draw.
	//
	// Parameters:
	//   - viewProj: the camera view-projection matrix, column-major
	//   - model: the object's model matrix, column-major
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the writes to pass to Renderer.WriteBuffers
	UniformWrites(viewProj, model [16]float32) []bind_group_provider.BufferWrite

	// Init registers the material's pipeline and creates its uniform bind group.
	//
	// Parameters:
	//   - r: the renderer owning the GPU resources
	//
	// Returns:
	//   - error: an error if the pipeline or bind group could not be created
	Init(r renderer.Renderer) error

	// Release frees the GPU resources the material owns. Shared texture providers are
	// left to their owner.
	Release()
}

func newMaterial(defaultName string, p pipeline.Pipeline, textureGroups int, options ...MaterialBuilderOption) material {
	m := material{
		name:     defaultName,
		pipeline: p,
		textures: make([]bind_group_provider.BindGroupProvider, textureGroups),
	}
	for _, opt := range options {
		opt(&m)
	}
	m.uniforms = bind_group_provider.NewBindGroupProvider(m.name + " Uniforms")
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipeline.PipelineKey()
}

func (m *material) BindGroups() []bind_group_provider.BindGroupProvider {
	groups := make([]bind_group_provider.BindGroupProvider, 0, 1+len(m.textures))
	groups = append(groups, m.uniforms)
	return append(groups, m.textures...)
}

// Init registers the pipeline, adopting an already registered one with the same key,
// and creates the uniform buffer sized from the shader's struct layout.
func (m *material) Init(r renderer.Renderer) error {
	if err := r.RegisterPipelines(m.pipeline); err != nil {
		return fmt.Errorf("material %s: %w", m.name, err)
	}
	m.pipeline = r.Pipeline(m.pipeline.PipelineKey())
	if err := r.InitBindGroup(m.uniforms, m.pipeline.BindGroupLayoutDescriptor(0), nil, nil); err != nil {
		return fmt.Errorf("material %s uniforms: %w", m.name, err)
	}
	return nil
}

func (m *material) Release() {
	m.uniforms.Release()
}

func (m *material) setTexture(group int, provider bind_group_provider.BindGroupProvider) {
	m.textures[group-1] = provider
}

func (m *material) uniformWrite(data []byte) []bind_group_provider.BufferWrite {
	return []bind_group_provider.BufferWrite{{
		Provider: m.uniforms,
		Binding:  0,
		Offset:   0,
		Data:     data,
	}}
}
