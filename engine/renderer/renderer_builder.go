package renderer

// RendererBuilderOption configures a renderer before its surface exists. The pending
// values are applied when the surface is first configured.
type RendererBuilderOption func(*renderer)

// WithPresentMode picks how finished frames reach the display.
//
// Parameters:
//   - mode: PresentModeVSync waits for vertical blank, PresentModeUncapped does not
//
// Returns:
//   - RendererBuilderOption: option storing the pending present mode
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA picks the sample count shared by the surface attachments, every render target
// and every pipeline. MSAA4x is used when unset.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: option storing the pending sample count
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer asks wgpu for the fallback adapter, e.g. lavapipe on machines
// without a GPU driver.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
