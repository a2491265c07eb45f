package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets a window the engine renders into rather than creating one. The caller
// keeps ownership and closes it.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions makes the engine create and own its window. A window that cannot be
// created makes NewEngine fail with ErrMissingContainer.
//
// Parameters:
//   - options: window builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOpts = append([]window.WindowBuilderOption{}, options...)
	}
}

// WithRenderer uses an existing renderer instead of creating one for the window.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.r = r
	}
}

// WithRendererOptions passes options to the renderer the engine creates.
//
// Parameters:
//   - options: renderer builder options (MSAA, present mode, software adapter)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rOpts = append(e.rOpts, options...)
	}
}

// WithOrbitControls lets the user orbit the camera by middle-dragging and zoom with the
// scroll wheel. Motion eases out when damping is in (0,1]; 0 applies input immediately.
//
// Parameters:
//   - damping: the fraction of queued motion applied per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrbitControls(damping float32) EngineBuilderOption {
	return func(e *engine) {
		e.orbitEnabled = true
		e.damping = damping
	}
}

// WithStats logs frame and memory statistics once per second.
func WithStats() EngineBuilderOption {
	return func(e *engine) {
		e.statsEnabled = true
	}
}

// WithClock replaces time.Now for the frame clock.
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
	}
}
