package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is the part of a window the renderer draws to.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width and Height are the framebuffer size in pixels.
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer is the high-level rendering API. It caches pipelines by key, forwards
// resource creation to its backend and sequences frames.
//
// A frame is either a surface frame (BeginFrame, DrawCall..., EndFrame, Present) or a
// render-target frame (BeginTargetFrame, DrawCall..., EndFrame). Frames never nest.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline for key, or nil.
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline for each Pipeline and caches it by
	// PipelineKey. Keys already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// SurfaceSize returns the framebuffer size the surface is configured with.
	SurfaceSize() (width, height int)

	// MaxTextureDimension returns the largest 2D texture side the device accepts.
	MaxTextureDimension() int

	// InitMeshBuffers uploads vertex and index data into buffers stored on provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: raw vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates any missing buffers and the bind group described by descriptor,
	// storing both on provider. Texture and sampler bindings must already be present on
	// the provider. Buffer usage and size can be overridden per binding.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor, usually a Pipeline's merged layout for one group
	//   - bufferUsageOverrides: extra usage flags keyed by binding index (nil safe)
	//   - bufferSizeOverrides: buffer sizes replacing MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads staged RGBA8 pixels into an sRGB texture owned by provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the texture on
	//   - bindingKey: the binding index for this texture
	//   - stagingData: the pixel data and dimensions
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler stored on provider at bindingKey.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues buffer writes. They land before the next submitted frame.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateRenderTarget allocates an off-screen target in the surface format.
	//
	// Parameters:
	//   - label: debug label
	//   - width: width in pixels
	//   - height: height in pixels
	//
	// Returns:
	//   - RenderTarget: the target, owned by the caller
	//   - error: an error if texture creation fails
	CreateRenderTarget(label string, width, height int) (RenderTarget, error)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	BeginFrame() error

	// BeginTargetFrame begins a render pass into rt.
	BeginTargetFrame(rt RenderTarget) error

	// DrawCall draws one indexed mesh with a cached pipeline. bindGroups are bound to
	// group indices in slice order.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered Pipeline
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - bindGroups: providers whose bind groups are set for groups 0..n-1
	//
	// Returns:
	//   - error: an error if the pipeline is not registered or a bind group is missing
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current pass and submits it. Call Present after a surface frame.
	EndFrame()

	// Present presents the surface frame, if one is held.
	Present()

	// SetPresentMode changes the present mode. It takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// Release frees cached pipelines and every backend GPU object.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to surface and configures it at the surface's
// framebuffer size.
//
// Parameters:
//   - backendType: the rendering backend to use
//   - surface: the window to draw into
//   - options: options configuring MSAA, present mode and adapter selection
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device could be acquired
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// options first so forceFallbackAdapter is known before the adapter request
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(surface.Width(), surface.Height())

	pending := make([]pipeline.Pipeline, 0, len(r.pipelineCache))
	for _, p := range r.pipelineCache {
		pending = append(pending, p)
	}
	clear(r.pipelineCache)
	if err := r.RegisterPipelines(pending...); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SurfaceSize() (int, int) {
	return r.backend.SurfaceSize()
}

func (r *renderer) MaxTextureDimension() int {
	return r.backend.MaxTextureDimension()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateRenderTarget(label string, width, height int) (RenderTarget, error) {
	return r.backend.CreateRenderTarget(label, width, height)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) BeginTargetFrame(rt RenderTarget) error {
	if rt == nil {
		return fmt.Errorf("begin target frame: nil render target")
	}
	return r.backend.BeginTargetFrame(rt)
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	if meshProvider == nil || meshProvider.VertexBuffer() == nil || meshProvider.IndexBuffer() == nil {
		return fmt.Errorf("render pipeline %q: mesh has no GPU buffers", pipelineKey)
	}
	for i, bg := range bindGroups {
		if bg == nil || bg.BindGroup() == nil {
			return fmt.Errorf("render pipeline %q: group %d has no bind group", pipelineKey, i)
		}
	}

	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
	}
}
