package refract

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViewProj(aspect float32) [16]float32 {
	var view, proj, vp [16]float32
	common.LookAt(view[:], [3]float32{0, 0, CameraZ}, [3]float32{}, [3]float32{0, 1, 0})
	common.Perspective(proj[:], common.DegToRad(50), aspect, 0.01, 1000)
	common.Mul4(vp[:], proj[:], view[:])
	return vp
}

func TestLinkPosition(t *testing.T) {
	pos := LinkPosition(Extent{Width: 4, Height: 2})
	assert.InDelta(t, 1.8, pos[0], 1e-6)
	assert.InDelta(t, -0.8, pos[1], 1e-6)
	assert.InDelta(t, 0.01, pos[2], 1e-6)
}

func TestPointerRayThroughCenter(t *testing.T) {
	origin, dir, ok := PointerRay([2]float32{0, 0}, testViewProj(1))
	require.True(t, ok)
	assert.InDelta(t, 0, origin.X(), 1e-4)
	assert.InDelta(t, 0, origin.Y(), 1e-4)
	assert.InDelta(t, CameraZ-0.01, origin.Z(), 1e-3)
	assert.InDelta(t, -1, dir.Z(), 1e-4)
}

func TestPointerRaySingularMatrix(t *testing.T) {
	_, _, ok := PointerRay([2]float32{0, 0}, [16]float32{})
	assert.False(t, ok)
}

func TestLinkPlaneHover(t *testing.T) {
	aspect := float32(4.0 / 3)
	ext := ComputeExtent(CameraZ, 50, aspect)
	link := newLinkPlane("https://example.com", ext)
	vp := testViewProj(aspect)

	// project the link center back to the pointer space
	clip := mgl32.Mat4(vp).Mul4x1(link.center.Vec4(1))
	ndc := [2]float32{clip.X() / clip.W(), clip.Y() / clip.W()}

	tests := []struct {
		name    string
		pointer [2]float32
		want    bool
	}{
		{"center of link", ndc, true},
		{"inside edge", [2]float32{ndc[0] + 0.04, ndc[1] - 0.04}, true},
		{"screen center", [2]float32{0, 0}, false},
		{"just outside", [2]float32{ndc[0] - 0.1, ndc[1]}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, dir, ok := PointerRay(tt.pointer, vp)
			require.True(t, ok)
			assert.Equal(t, tt.want, link.hit(origin, dir))
		})
	}
}

func TestLinkPlaneParallelRay(t *testing.T) {
	link := newLinkPlane("u", Extent{Width: 4, Height: 2})
	assert.False(t, link.hit(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, 0, 0}))
	assert.False(t, link.hit(mgl32.Vec3{1.8, -0.8, 3}, mgl32.Vec3{0, 0, 1}), "plane behind the ray")
}
