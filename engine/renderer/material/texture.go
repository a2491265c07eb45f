package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
)

// NewTexture uploads an image into a provider holding a texture at binding 0 and a
// clamped linear sampler at binding 1. The resulting bind group fits group 1 and 2 of
// the screen material and group 1 of the background material.
//
// Parameters:
//   - r: the renderer owning the GPU resources
//   - label: debug label, usually the asset name
//   - data: decoded RGBA8 pixels
//
// Returns:
//   - bind_group_provider.BindGroupProvider: the provider, owned by the caller
//   - error: an error if any GPU object could not be created
func NewTexture(r renderer.Renderer, label string, data common.TextureStagingData) (bind_group_provider.BindGroupProvider, error) {
	if err := r.RegisterPipelines(ScreenPipeline()); err != nil {
		return nil, err
	}
	layout := r.Pipeline(ScreenPipelineKey).BindGroupLayoutDescriptor(1)

	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := r.InitTextureView(provider, 0, data); err != nil {
		provider.Release()
		return nil, fmt.Errorf("texture %s: %w", label, err)
	}
	if err := r.InitSampler(provider, 1, common.ClampedLinearSampler); err != nil {
		provider.Release()
		return nil, fmt.Errorf("texture %s: %w", label, err)
	}
	if err := r.InitBindGroup(provider, layout, nil, nil); err != nil {
		provider.Release()
		return nil, fmt.Errorf("texture %s: %w", label, err)
	}
	return provider, nil
}
