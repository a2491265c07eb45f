package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTarget is an off-screen color attachment that can be bound as a sampled texture
// once a target frame has been submitted.
type RenderTarget interface {
	Label() string
	Width() int
	Height() int

	// TextureView returns the single-sampled color view, the one shaders sample.
	// The view changes on Resize, so bind groups holding it must be rebuilt.
	TextureView() *wgpu.TextureView

	// Resize recreates the target's textures at a new size. Equal sizes are a no-op.
	//
	// Parameters:
	//   - width: width in pixels
	//   - height: height in pixels
	//
	// Returns:
	//   - error: an error if a texture could not be created
	Resize(width, height int) error

	// Release frees every texture of the target.
	Release()
}

// renderTarget holds a resolve texture plus, when MSAA is on, a multisampled texture the
// pass draws into. Depth always matches the color sample count.
type renderTarget struct {
	device      *wgpu.Device
	label       string
	format      wgpu.TextureFormat
	sampleCount uint32

	width, height int

	color, msaa, depth             *wgpu.Texture
	colorView, msaaView, depthView *wgpu.TextureView
}

var _ RenderTarget = &renderTarget{}

func newRenderTarget(device *wgpu.Device, label string, format wgpu.TextureFormat, sampleCount uint32, width, height int) (*renderTarget, error) {
	rt := &renderTarget{
		device:      device,
		label:       label,
		format:      format,
		sampleCount: sampleCount,
	}
	if err := rt.allocate(width, height); err != nil {
		rt.Release()
		return nil, err
	}
	return rt, nil
}

func (rt *renderTarget) Label() string {
	return rt.label
}

func (rt *renderTarget) Width() int {
	return rt.width
}

func (rt *renderTarget) Height() int {
	return rt.height
}

func (rt *renderTarget) TextureView() *wgpu.TextureView {
	return rt.colorView
}

func (rt *renderTarget) Resize(width, height int) error {
	if width == rt.width && height == rt.height {
		return nil
	}
	rt.Release()
	return rt.allocate(width, height)
}

func (rt *renderTarget) Release() {
	for _, tv := range []*wgpu.TextureView{rt.colorView, rt.msaaView, rt.depthView} {
		if tv != nil {
			tv.Release()
		}
	}
	for _, tex := range []*wgpu.Texture{rt.color, rt.msaa, rt.depth} {
		if tex != nil {
			tex.Release()
		}
	}
	rt.colorView, rt.msaaView, rt.depthView = nil, nil, nil
	rt.color, rt.msaa, rt.depth = nil, nil, nil
	rt.width, rt.height = 0, 0
}

// colorAttachment returns the attachment a pass into this target uses, resolving the
// multisampled texture into the sampled one when MSAA is on.
func (rt *renderTarget) colorAttachment(clear wgpu.Color) wgpu.RenderPassColorAttachment {
	if rt.msaaView != nil {
		return wgpu.RenderPassColorAttachment{
			View:          rt.msaaView,
			ResolveTarget: rt.colorView,
			LoadOp:        wgpu.LoadOpClear,
			StoreOp:       wgpu.StoreOpDiscard,
			ClearValue:    clear,
		}
	}
	return wgpu.RenderPassColorAttachment{
		View:       rt.colorView,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear,
	}
}

func (rt *renderTarget) allocate(width, height int) error {
	width, height = max(width, 1), max(height, 1)

	var err error
	rt.color, rt.colorView, err = rt.createTexture(rt.label+" Color", rt.format, 1,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, width, height)
	if err != nil {
		return err
	}
	if rt.sampleCount > 1 {
		rt.msaa, rt.msaaView, err = rt.createTexture(rt.label+" MSAA", rt.format, rt.sampleCount,
			wgpu.TextureUsageRenderAttachment, width, height)
		if err != nil {
			return err
		}
	}
	rt.depth, rt.depthView, err = rt.createTexture(rt.label+" Depth", wgpu.TextureFormatDepth24Plus, rt.sampleCount,
		wgpu.TextureUsageRenderAttachment, width, height)
	if err != nil {
		return err
	}

	rt.width, rt.height = width, height
	return nil
}

func (rt *renderTarget) createTexture(label string, format wgpu.TextureFormat, samples uint32, usage wgpu.TextureUsage, width, height int) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := rt.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}
