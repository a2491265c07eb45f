package renderer

import (
	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing.
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// ParseMSAA maps a configured sample count to an MSAASampleCount. Unsupported counts
// turn MSAA off.
func ParseMSAA(samples int) MSAASampleCount {
	switch s := MSAASampleCount(samples); s {
	case MSAA4x, MSAA8x, MSAA16x:
		return s
	default:
		return MSAAOff
	}
}

// RendererBackend is the GPU API seam behind the Renderer. The Renderer owns the
// pipeline cache and argument checks; the backend owns every GPU object.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and the surface's MSAA and depth
	// attachments for a framebuffer size.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	ConfigureSurface(width, height int)

	// SurfaceSize returns the size the surface was last configured with.
	SurfaceSize() (int, int)

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// MaxTextureDimension returns the device's 2D texture size limit.
	MaxTextureDimension() int

	// RegisterRenderPipeline creates the shader modules, pipeline layout and render pipeline
	// for p, storing the result with p.SetRenderPipeline.
	//
	// Parameters:
	//   - p: a pipeline with both stages set
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateRenderTarget allocates an off-screen color target in the surface format,
	// with its own MSAA and depth attachments.
	//
	// Parameters:
	//   - label: debug label for the target's textures
	//   - width: width in pixels
	//   - height: height in pixels
	//
	// Returns:
	//   - RenderTarget: the target
	//   - error: an error if any texture could not be created
	CreateRenderTarget(label string, width, height int) (RenderTarget, error)

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	BeginFrame() error

	// BeginTargetFrame begins a render pass into rt. The pass is submitted by EndFrame and
	// nothing is presented.
	BeginTargetFrame(rt RenderTarget) error

	// DrawCall binds p and the providers' bind groups in order, then draws the mesh.
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the current pass and submits it.
	EndFrame()

	// Present presents the swapchain texture acquired by BeginFrame, if any.
	Present()

	// Release frees the surface attachments, the device and the instance.
	Release()
}
