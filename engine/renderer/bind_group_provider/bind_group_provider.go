package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string

	// GPU resources below are created by the Renderer and released by Release.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textures        map[int]*wgpu.Texture
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// borrowed marks texture view bindings owned elsewhere (for example a render target);
	// Release leaves them alone.
	borrowed map[int]bool

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider owns the GPU resources behind one bind group, or behind one mesh.
//
// Usage pattern:
//  1. A component creates a provider with a unique label
//  2. The Renderer fills buffers, textures and samplers (InitTextureView, InitSampler, ...)
//  3. Renderer.InitBindGroup creates the bind group from a shader layout descriptor
//  4. Renderer.WriteBuffers updates uniforms each frame
//  5. Draw calls bind BindGroup()
type BindGroupProvider interface {
	// Release frees every GPU resource the provider owns. Borrowed texture views are
	// forgotten but not released.
	Release()

	// ReleaseBindGroup frees only the bind group, keeping buffers, textures and samplers so
	// the group can be rebuilt after a binding changes.
	ReleaseBindGroup()

	// Label returns the debug label for this provider.
	Label() string

	// BindGroup returns the created bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created with, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns all buffers keyed by binding index.
	Buffers() map[int]*wgpu.Buffer

	// Texture returns the texture backing a binding, or nil if the view is borrowed or unset.
	Texture(binding int) *wgpu.Texture

	// TextureView returns the texture view at a binding, or nil.
	TextureView(binding int) *wgpu.TextureView

	// TextureViews returns all texture views keyed by binding index, borrowed ones included.
	TextureViews() map[int]*wgpu.TextureView

	// Sampler returns the sampler at a binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// Samplers returns all samplers keyed by binding index.
	Samplers() map[int]*wgpu.Sampler

	// VertexBuffer returns the GPU vertex buffer, or nil.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for indexed draws.
	IndexCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores an owned texture and its view for a binding, releasing any
	// previously owned pair at that binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the texture
	//   - tv: a view of tex
	SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView)

	// SetBorrowedTextureView stores a view owned by someone else, releasing any previously
	// owned texture at that binding. The bind group must be rebuilt to pick it up.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the borrowed view
	SetBorrowedTextureView(binding int, tv *wgpu.TextureView)

	SetSampler(binding int, s *wgpu.Sampler)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: debug label, also used to name GPU resources
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: the provider, holding no GPU resources yet
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
		borrowed:     make(map[int]bool),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) Texture(binding int) *wgpu.Texture {
	return p.textures[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) TextureViews() map[int]*wgpu.TextureView {
	return p.textureViews
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) Samplers() map[int]*wgpu.Sampler {
	return p.samplers
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView) {
	p.releaseTexture(binding)
	p.textures[binding] = tex
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetBorrowedTextureView(binding int, tv *wgpu.TextureView) {
	p.releaseTexture(binding)
	p.textureViews[binding] = tv
	p.borrowed[binding] = true
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	if old := p.samplers[binding]; old != nil && old != s {
		old.Release()
	}
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

// releaseTexture drops whatever occupies a texture binding, releasing it only when owned.
func (p *bindGroupProvider) releaseTexture(binding int) {
	if !p.borrowed[binding] {
		if tv := p.textureViews[binding]; tv != nil {
			tv.Release()
		}
		if tex := p.textures[binding]; tex != nil {
			tex.Release()
		}
	}
	delete(p.textureViews, binding)
	delete(p.textures, binding)
	delete(p.borrowed, binding)
}

func (p *bindGroupProvider) ReleaseBindGroup() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
}

func (p *bindGroupProvider) Release() {
	p.ReleaseBindGroup()

	for binding := range p.textureViews {
		p.releaseTexture(binding)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
