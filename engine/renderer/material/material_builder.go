package material

import (
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material. The name also
// labels the material's GPU resources.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithTexture binds a texture provider at a group index. Groups start at 1 since group 0
// always holds the uniforms; out of range groups are ignored.
//
// Parameters:
//   - group: the @group index in the material's shader
//   - provider: a provider created with NewTexture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(group int, provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		if group >= 1 && group <= len(m.textures) {
			m.textures[group-1] = provider
		}
	}
}
