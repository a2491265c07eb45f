package refract

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/stretchr/testify/assert"
)

func TestDebugPanelStartsClosed(t *testing.T) {
	var changes []float32
	p := NewDebugPanel("refract power", 0, 0, 1, 0.01, func(v float32) { changes = append(changes, v) })

	assert.False(t, p.Open())
	assert.False(t, p.HandleKey(common.KeyUp), "closed panel ignores arrows")
	assert.Empty(t, changes)
	assert.Equal(t, "refract power", p.Label())
}

func TestDebugPanelSteps(t *testing.T) {
	var changes []float32
	p := NewDebugPanel("refract power", 0, 0, 1, 0.01, func(v float32) { changes = append(changes, v) })

	assert.True(t, p.HandleKey(common.KeyF1))
	assert.True(t, p.Open())

	for range 30 {
		p.HandleKey(common.KeyUp)
	}
	assert.InDelta(t, 0.30, p.Value(), 1e-6)
	assert.Len(t, changes, 30)

	p.HandleKey(common.KeyDown)
	assert.InDelta(t, 0.29, p.Value(), 1e-6)

	assert.False(t, p.HandleKey(common.KeyLeft))
	assert.True(t, p.HandleKey(common.KeyF1))
	assert.False(t, p.Open())
}

func TestDebugPanelClampsToRange(t *testing.T) {
	p := NewDebugPanel("x", 2, 0, 1, 0.01, nil)
	assert.Equal(t, float32(1), p.Value())

	p.HandleKey(common.KeyF1)
	p.HandleKey(common.KeyUp)
	assert.Equal(t, float32(1), p.Value())

	low := NewDebugPanel("y", 0, 0, 1, 0.01, nil)
	low.HandleKey(common.KeyF1)
	low.HandleKey(common.KeyDown)
	assert.Equal(t, float32(0), low.Value())
}

func TestDebugPanelDestroy(t *testing.T) {
	calls := 0
	p := NewDebugPanel("x", 0, 0, 1, 0.1, func(float32) { calls++ })
	p.HandleKey(common.KeyF1)
	p.Destroy()

	assert.False(t, p.Open())
	assert.False(t, p.HandleKey(common.KeyF1))
	assert.False(t, p.HandleKey(common.KeyUp))
	assert.Zero(t, calls)
}
