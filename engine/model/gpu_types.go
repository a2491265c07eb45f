package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (32 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Size: 32 bytes, no padding.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	TexCoord [2]float32 // offset 24, (0,0) is the top-left of a texture
}

// Size returns the size of the GPUVertex struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the vertex little-endian for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	g.put(buf)
	return buf
}

func (g *GPUVertex) put(buf []byte) {
	fields := [8]float32{
		g.Position[0], g.Position[1], g.Position[2],
		g.Normal[0], g.Normal[1], g.Normal[2],
		g.TexCoord[0], g.TexCoord[1],
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

// MarshalVertices packs a vertex slice into one contiguous buffer.
func MarshalVertices(vertices []GPUVertex) []byte {
	const stride = 32
	buf := make([]byte, len(vertices)*stride)
	for i := range vertices {
		vertices[i].put(buf[i*stride:])
	}
	return buf
}

// MarshalIndices packs uint32 indices little-endian.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
