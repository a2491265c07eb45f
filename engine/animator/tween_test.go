package animator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func crossfadeTween(repeats *[]int) Tween {
	return NewTween(
		WithDelay(3),
		WithDuration(5),
		WithRepeat(RepeatForever),
		WithRepeatDelay(2),
		WithEase(Power3Out),
		WithOnRepeat(func(n int) { *repeats = append(*repeats, n) }),
	)
}

func TestEasing(t *testing.T) {
	assert.Equal(t, float32(0), Power3Out(0))
	assert.Equal(t, float32(1), Power3Out(1))
	assert.InDelta(t, 0.875, Power3Out(0.5), 1e-6)
	assert.InDelta(t, 0.25, Power2In(0.5), 1e-6)
	assert.InDelta(t, 0.75, Power2Out(0.5), 1e-6)
	assert.InDelta(t, 0.125, Power3In(0.5), 1e-6)
	assert.Equal(t, float32(0.3), Linear(0.3))
}

func TestTweenDelayThenIteration(t *testing.T) {
	var repeats []int
	tw := crossfadeTween(&repeats)

	tw.Advance(2)
	assert.Zero(t, tw.Progress())
	assert.Zero(t, tw.Value())

	tw.Advance(3.5)
	assert.InDelta(t, 0.5, tw.Progress(), 1e-6)
	assert.InDelta(t, 0.875, tw.Value(), 1e-6)

	tw.Advance(2.5)
	assert.Equal(t, float32(1), tw.Progress())

	tw.Advance(1.5)
	assert.Equal(t, float32(1), tw.Progress(), "held during repeat delay")
	assert.Empty(t, repeats)

	tw.Advance(0.5)
	assert.Equal(t, []int{1}, repeats)
	assert.Zero(t, tw.Progress())
	assert.False(t, tw.Done())
}

func TestTweenLargeStepFiresEveryRepeat(t *testing.T) {
	var repeats []int
	tw := crossfadeTween(&repeats)
	tw.Advance(3 + 7*3 + 1)
	assert.Equal(t, []int{1, 2, 3}, repeats)
	assert.Equal(t, 3, tw.Repeats())
	assert.InDelta(t, 0.2, tw.Progress(), 1e-6)
}

func TestTweenFiniteCompletes(t *testing.T) {
	var values []float32
	completed := 0
	tw := NewTween(
		WithFromTo(1, 0),
		WithDuration(1),
		WithEase(Power2In),
		WithOnUpdate(func(v float32) { values = append(values, v) }),
		WithOnComplete(func() { completed++ }),
	)

	tw.Advance(0.5)
	assert.InDelta(t, 0.75, tw.Value(), 1e-6)
	tw.Advance(0.75)
	assert.True(t, tw.Done())
	assert.Equal(t, float32(0), tw.Value())
	tw.Advance(1)
	assert.Equal(t, 1, completed)
	assert.Len(t, values, 2)
}

func TestTweenFiniteRepeat(t *testing.T) {
	var repeats []int
	tw := NewTween(WithDuration(1), WithRepeat(2), WithRepeatDelay(1), WithOnRepeat(func(n int) { repeats = append(repeats, n) }))
	tw.Advance(100)
	assert.True(t, tw.Done())
	assert.Equal(t, []int{1, 2}, repeats)
	assert.Equal(t, float32(1), tw.Progress())
}

func TestTweenKillAndNegativeStep(t *testing.T) {
	tw := NewTween(WithDuration(2))
	tw.Advance(-1)
	assert.Zero(t, tw.Progress())
	tw.Advance(1)
	tw.Kill()
	tw.Advance(1)
	assert.True(t, tw.Done())
	assert.InDelta(t, 0.5, tw.Progress(), 1e-6)
}
