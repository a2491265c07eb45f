package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickSamplesEachInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	p := NewProfiler(WithClock(clock.now), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	for range 49 {
		clock.t = clock.t.Add(20 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock.t = clock.t.Add(20 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 50, p.Last().FPS, 1e-9)
	assert.Contains(t, buf.String(), "fps=")
}

func TestHiddenProfilerStaysQuiet(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	p := NewProfiler(WithClock(clock.now), WithInterval(time.Millisecond), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	p.SetVisible(false)
	assert.False(t, p.Visible())

	clock.t = clock.t.Add(time.Second)
	assert.True(t, p.Tick())
	assert.Empty(t, buf.String())
	assert.InDelta(t, 1, p.Last().FPS, 1e-9)
}
