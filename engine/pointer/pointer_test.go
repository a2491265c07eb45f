package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	w, h    int
	move    func(x, y float64)
	touch   func([]Touch)
	removed int
}

func (f *fakeSource) AddPointerMoveListener(l func(x, y float64)) func() {
	f.move = l
	return func() { f.move = nil; f.removed++ }
}

func (f *fakeSource) AddTouchMoveListener(l func([]Touch)) func() {
	f.touch = l
	return func() { f.touch = nil; f.removed++ }
}

func (f *fakeSource) LogicalWidth() int  { return f.w }
func (f *fakeSource) LogicalHeight() int { return f.h }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want [2]float32
	}{
		{"center", 400, 300, [2]float32{0, 0}},
		{"top left", 0, 0, [2]float32{-1, 1}},
		{"bottom right", 800, 600, [2]float32{1, -1}},
		{"quarter", 200, 450, [2]float32{-0.5, -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.x, tt.y, 800, 600)
			assert.InDelta(t, tt.want[0], got[0], 1e-6)
			assert.InDelta(t, tt.want[1], got[1], 1e-6)
		})
	}
	assert.Equal(t, [2]float32{}, Normalize(10, 10, 0, 600))
}

func TestAcquireSharesInstance(t *testing.T) {
	src := &fakeSource{w: 800, h: 600}
	a := Acquire(src)
	t.Cleanup(Release)
	b := Acquire(&fakeSource{})
	assert.Same(t, a, b)
	assert.Equal(t, [2]float32{}, a.Position())

	require.NotNil(t, src.move)
	src.move(0, 0)
	assert.Equal(t, [2]float32{-1, 1}, a.Position())
}

func TestTouchUsesFirstPoint(t *testing.T) {
	src := &fakeSource{w: 100, h: 100}
	tr := Acquire(src)
	t.Cleanup(Release)

	require.NotNil(t, src.touch)
	src.touch([]Touch{{X: 100, Y: 100}, {X: 0, Y: 0}})
	assert.Equal(t, [2]float32{1, -1}, tr.Position())

	src.touch(nil)
	assert.Equal(t, [2]float32{1, -1}, tr.Position())
}

func TestReleaseRecreates(t *testing.T) {
	src := &fakeSource{w: 10, h: 10}
	first := Acquire(src)
	Release()
	assert.Nil(t, src.move)
	assert.Nil(t, src.touch)
	assert.Equal(t, 2, src.removed)

	second := Acquire(src)
	t.Cleanup(Release)
	assert.NotSame(t, first, second)

	first.Dispose()
	assert.Same(t, second, Acquire(nil))
}

func TestReleaseWithoutInstance(t *testing.T) {
	assert.NotPanics(t, Release)
	tr := Acquire(nil)
	assert.Equal(t, [2]float32{}, tr.Position())
	assert.NotPanics(t, tr.Dispose)
	assert.NotPanics(t, tr.Dispose)
}
