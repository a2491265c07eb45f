package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUScreenUniformSource is the canonical WGSL definition of the ScreenUniform struct.
// Matches GPUScreenUniform layout exactly (160 bytes).
//
//go:embed assets/screen_uniform.wgsl
var GPUScreenUniformSource string

// GPUSphereUniformSource is the canonical WGSL definition of the SphereUniform struct.
// Matches GPUSphereUniform layout exactly (144 bytes).
//
//go:embed assets/sphere_uniform.wgsl
var GPUSphereUniformSource string

// GPUBackgroundUniformSource is the canonical WGSL definition of the BackgroundUniform struct.
// Matches GPUBackgroundUniform layout exactly (48 bytes).
//
//go:embed assets/background_uniform.wgsl
var GPUBackgroundUniformSource string

//go:embed assets/screen.wgsl
var screenShaderBody string

//go:embed assets/sphere.wgsl
var sphereShaderBody string

//go:embed assets/background.wgsl
var backgroundShaderBody string

// GPUScreenUniform is the crossfade plane's uniform block.
// Size: 160 bytes (148 rounded up to the 16-byte struct alignment).
type GPUScreenUniform struct {
	ViewProj       [16]float32 // offset   0
	Model          [16]float32 // offset  64
	CurrentUVScale [2]float32  // offset 128
	NextUVScale    [2]float32  // offset 136
	Progress       float32     // offset 144
	_pad           [3]float32  // offset 148
}

// Size returns the size of the GPUScreenUniform struct in bytes.
func (g *GPUScreenUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform little-endian for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer
func (g *GPUScreenUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := putFloats(buf, 0, g.ViewProj[:]...)
	off = putFloats(buf, off, g.Model[:]...)
	off = putFloats(buf, off, g.CurrentUVScale[:]...)
	off = putFloats(buf, off, g.NextUVScale[:]...)
	putFloats(buf, off, g.Progress)
	return buf
}

// GPUSphereUniform is the refraction sphere's uniform block.
// Size: 144 bytes, no padding.
type GPUSphereUniform struct {
	ViewProj     [16]float32 // offset   0
	Model        [16]float32 // offset  64
	ScreenCoord  [2]float32  // offset 128: framebuffer size in pixels
	Time         float32     // offset 136: seconds since the sphere appeared
	RefractPower float32     // offset 140: 0..1
}

// Size returns the size of the GPUSphereUniform struct in bytes.
func (g *GPUSphereUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform little-endian for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer
func (g *GPUSphereUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := putFloats(buf, 0, g.ViewProj[:]...)
	off = putFloats(buf, off, g.Model[:]...)
	off = putFloats(buf, off, g.ScreenCoord[:]...)
	putFloats(buf, off, g.Time, g.RefractPower)
	return buf
}

// GPUBackgroundUniform holds a 3x3 UV transform. WGSL pads each mat3x3 column to 16
// bytes, so the columns are stored as vec4s with an unused fourth lane.
// Size: 48 bytes.
type GPUBackgroundUniform struct {
	UVTransform [3][4]float32 // offset 0: column-major
}

// SetUVTransform stores a column-major 3x3 matrix.
func (g *GPUBackgroundUniform) SetUVTransform(m [9]float32) {
	for col := range 3 {
		g.UVTransform[col] = [4]float32{m[col*3], m[col*3+1], m[col*3+2], 0}
	}
}

// Size returns the size of the GPUBackgroundUniform struct in bytes.
func (g *GPUBackgroundUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform little-endian for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer
func (g *GPUBackgroundUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := 0
	for col := range g.UVTransform {
		off = putFloats(buf, off, g.UVTransform[col][:]...)
	}
	return buf
}

func putFloats(buf []byte, off int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return off
}
