package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoveredTextureScale(t *testing.T) {
	aspect := float32(1920) / 1080
	tests := []struct {
		name          string
		width, height int
		want          [2]float32
	}{
		{"square", 1000, 1000, [2]float32{1, 0.5625}},
		{"3:2", 1500, 1000, [2]float32{1, 0.84375}},
		{"16:9", 1920, 1080, [2]float32{1, 1}},
		{"2:1", 2000, 1000, [2]float32{0.8889, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target [2]float32
			got := CoveredTextureScale(tt.width, tt.height, aspect, &target)
			assert.InDelta(t, tt.want[0], got[0], 1e-3)
			assert.InDelta(t, tt.want[1], got[1], 1e-3)
			assert.Equal(t, got, target)

			// exactly one axis is 1, the other in (0, 1]
			assert.True(t, got[0] == 1 || got[1] == 1)
			assert.Greater(t, got[0], float32(0))
			assert.Greater(t, got[1], float32(0))
			assert.LessOrEqual(t, got[0], float32(1))
			assert.LessOrEqual(t, got[1], float32(1))

			// images wider than the viewport shrink u, the rest shrink v
			imageAspect := float32(tt.width) / float32(tt.height)
			if aspect < imageAspect {
				assert.Equal(t, float32(1), got[1])
			} else {
				assert.Equal(t, float32(1), got[0])
			}
		})
	}
}

func TestCoveredTextureScaleDegenerate(t *testing.T) {
	assert.Equal(t, [2]float32{1, 1}, CoveredTextureScale(0, 100, 1.5, nil))
	assert.Equal(t, [2]float32{1, 1}, CoveredTextureScale(100, 100, 0, nil))
}

func TestCoveredUVTransformKeepsCenter(t *testing.T) {
	m := CoveredUVTransform([2]float32{0.5, 1})
	apply := func(u, v float32) (float32, float32) {
		return m[0]*u + m[3]*v + m[6], m[1]*u + m[4]*v + m[7]
	}
	u, v := apply(0.5, 0.5)
	assert.InDelta(t, 0.5, u, 1e-6)
	assert.InDelta(t, 0.5, v, 1e-6)
	u, v = apply(0, 1)
	assert.InDelta(t, 0.25, u, 1e-6)
	assert.InDelta(t, 1, v, 1e-6)
	assert.Equal(t, float32(1), m[8])
}
