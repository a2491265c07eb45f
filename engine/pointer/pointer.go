// Package pointer tracks the cursor position normalized to the viewport.
//
// One Tracker is shared per process. Acquire creates it on first use and subscribes it to an
// EventSource; Release (or Tracker.Dispose) unsubscribes it and clears the shared slot so the
// next Acquire builds a fresh one.
package pointer

import (
	"math"
	"sync"
	"sync/atomic"
)

// EventSource delivers cursor movement in screen coordinates and reports the viewport size in
// the same units. window.Window satisfies it.
type EventSource interface {
	AddPointerMoveListener(listener func(x, y float64)) (remove func())
	LogicalWidth() int
	LogicalHeight() int
}

// Touch is one active touch point in screen coordinates.
type Touch struct {
	X, Y float64
}

// TouchSource is implemented by event sources that also deliver touch movement.
// Only the first touch of each event moves the tracker.
type TouchSource interface {
	AddTouchMoveListener(listener func(touches []Touch)) (remove func())
}

// Tracker exposes the latest normalized pointer position.
type Tracker interface {
	// Position returns the pointer in normalized device coordinates.
	// Both axes lie in [-1, 1]; y grows upward. Before any event it is (0, 0).
	Position() [2]float32

	// Dispose removes the tracker's listeners and clears the shared instance.
	Dispose()
}

type tracker struct {
	src EventSource

	// pos packs x and y float32 bits into one word so reads never tear.
	pos atomic.Uint64

	removers []func()
}

var (
	sharedMu sync.Mutex
	shared   *tracker
)

// Acquire returns the shared tracker, creating and subscribing it to src on first use.
// Later calls return the same instance and ignore src until the tracker is released.
//
// Parameters:
//   - src: source of cursor (and optionally touch) events
//
// Returns:
//   - Tracker: the shared tracker
func Acquire(src EventSource) Tracker {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		return shared
	}

	t := &tracker{src: src}
	if src != nil {
		t.removers = append(t.removers, src.AddPointerMoveListener(t.onMove))
		if ts, ok := src.(TouchSource); ok {
			t.removers = append(t.removers, ts.AddTouchMoveListener(t.onTouch))
		}
	}
	shared = t
	return t
}

// Release disposes the shared tracker if one exists.
func Release() {
	sharedMu.Lock()
	t := shared
	sharedMu.Unlock()
	if t != nil {
		t.Dispose()
	}
}

func (t *tracker) Position() [2]float32 {
	v := t.pos.Load()
	return [2]float32{math.Float32frombits(uint32(v >> 32)), math.Float32frombits(uint32(v))}
}

func (t *tracker) Dispose() {
	sharedMu.Lock()
	if shared == t {
		shared = nil
	}
	removers := t.removers
	t.removers = nil
	sharedMu.Unlock()

	for _, remove := range removers {
		remove()
	}
}

func (t *tracker) onMove(x, y float64) {
	t.store(Normalize(x, y, t.src.LogicalWidth(), t.src.LogicalHeight()))
}

func (t *tracker) onTouch(touches []Touch) {
	if len(touches) == 0 {
		return
	}
	t.onMove(touches[0].X, touches[0].Y)
}

func (t *tracker) store(p [2]float32) {
	t.pos.Store(uint64(math.Float32bits(p[0]))<<32 | uint64(math.Float32bits(p[1])))
}

// Normalize maps a cursor position inside a width×height viewport to [-1, 1] on both axes
// with y pointing up. A zero-size viewport maps everything to (0, 0).
func Normalize(x, y float64, width, height int) [2]float32 {
	if width <= 0 || height <= 0 {
		return [2]float32{}
	}
	nx := (x/float64(width))*2 - 1
	ny := -((y/float64(height))*2 - 1)
	return [2]float32{float32(nx), float32(ny)}
}
