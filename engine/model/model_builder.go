package model

import (
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that packs CPU geometry into the Model's vertex and index data
// and records its bounding radius.
//
// Parameters:
//   - mesh: the geometry to pack
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh MeshData) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalVertices(mesh.Vertices)
		m.indexData = MarshalIndices(mesh.Indices)
		m.indexCount = len(mesh.Indices)
		m.boundingRadius = mesh.BoundingRadius()
	}
}

// WithMeshProvider is an option builder that sets an already-uploaded mesh provider.
//
// Parameters:
//   - provider: the provider holding vertex and index buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
