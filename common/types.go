package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrNoImageSource is returned by ImportedTexture.Decode when neither Data nor Path is set.
var ErrNoImageSource = errors.New("texture has neither data nor path")

// TextureStagingData holds decoded RGBA8 pixels ready for upload to a GPU texture.
type TextureStagingData struct {
	// Pixels is tightly packed RGBA8, row-major, Width*Height*4 bytes.
	Pixels []byte

	Width  uint32
	Height uint32
}

// Aspect returns width / height of the staged image, or 0 for an empty image.
func (t TextureStagingData) Aspect() float32 {
	if t.Height == 0 {
		return 0
	}
	return float32(t.Width) / float32(t.Height)
}

// SamplerStagingData describes a sampler before creation. Zero fields fall back to
// repeat addressing with linear filtering.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	Compare                                  wgpu.CompareFunction
	MaxAnisotropy                            uint16
}

// ClampedLinearSampler is the sampler used for screen-space and cover-fitted textures.
var ClampedLinearSampler = SamplerStagingData{
	AddressModeU: wgpu.AddressModeClampToEdge,
	AddressModeV: wgpu.AddressModeClampToEdge,
	AddressModeW: wgpu.AddressModeClampToEdge,
}

// ImportedTexture is an image referenced by path or held in memory, decoded on demand.
type ImportedTexture struct {
	Name string
	Path string
	Data []byte

	// MaxDimension caps the longest side of the decoded image. Larger images are
	// downscaled preserving aspect. Zero disables the cap.
	MaxDimension int
}

// Decode reads and decodes the texture into RGBA8 staging data.
// JPEG, PNG and WebP are supported.
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: an error if the source cannot be read or decoded
func (t *ImportedTexture) Decode() (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, errors.New("texture is nil")
	}

	var r io.Reader
	switch {
	case len(t.Data) > 0:
		r = bytes.NewReader(t.Data)
	case t.Path != "":
		f, err := os.Open(t.Path)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("open texture %s: %w", t.Path, err)
		}
		defer f.Close()
		r = f
	default:
		return TextureStagingData{}, ErrNoImageSource
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("decode texture %s: %w", t.Name, err)
	}

	rgba := FitRGBA(img, t.MaxDimension)
	b := rgba.Bounds()
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}, nil
}

// FitRGBA converts img to a zero-origin RGBA image whose longest side does not exceed
// maxDim. Downscaling uses Catmull-Rom filtering. A maxDim of 0 keeps the original size.
func FitRGBA(img image.Image, maxDim int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			h = max(1, h*maxDim/w)
			w = maxDim
		} else {
			w = max(1, w*maxDim/h)
			h = maxDim
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}
