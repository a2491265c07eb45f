package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/camera"
	"github.com/Carmen-Shannon/oxy-refract/engine/profiler"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/scene"
	"github.com/Carmen-Shannon/oxy-refract/engine/window"
)

// ErrMissingContainer is returned by NewEngine when there is no window to render into.
var ErrMissingContainer = errors.New("engine: no window to render into")

// Default perspective camera settings.
const (
	DefaultFov     = 50
	DefaultNear    = 0.01
	DefaultFar     = 1000
	DefaultCameraZ = 5
)

// ViewportSize is the window size in screen coordinates.
type ViewportSize struct {
	Width, Height int
	Aspect        float32
}

// engine implements the Engine interface.
type engine struct {
	logger *slog.Logger

	window     window.Window
	ownsWindow bool
	windowOpts []window.WindowBuilderOption

	r      renderer.Renderer
	rOpts  []renderer.RendererBuilderOption
	scene  scene.Scene
	cam    camera.Camera
	ctrl   camera.CameraController
	now    func() time.Time
	last   time.Time
	onSize func()

	orbitEnabled bool
	damping      float32
	dragging     bool
	dragX, dragY float64
	removeDrag   func()

	profiler     *profiler.Profiler
	statsEnabled bool
}

// Engine owns the window, renderer, scene, camera and frame clock, and drives frames from
// the window's message loop.
type Engine interface {
	// Window returns the window frames are presented to.
	Window() window.Window

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// Camera returns the perspective camera.
	Camera() camera.Camera

	// Controller returns the controller positioning the camera.
	Controller() camera.CameraController

	// Size returns the viewport size, read from the window on every call.
	//
	// Returns:
	//   - ViewportSize: width and height in screen coordinates and their ratio
	Size() ViewportSize

	// PixelRatio returns framebuffer pixels per screen coordinate.
	PixelRatio() float32

	// SetPerspectiveCamera replaces the camera projection.
	//
	// Parameters:
	//   - fov: vertical field of view in degrees
	//   - aspect: width / height
	//   - near: near clipping distance
	//   - far: far clipping distance
	SetPerspectiveCamera(fov, aspect, near, far float32)

	// SetResizeCallback registers the function HandleResize runs before the camera and
	// renderer are updated. Pass nil to clear it.
	SetResizeCallback(callback func())

	// HandleResize runs the resize callback, updates the camera aspect and resizes the
	// renderer surface to the framebuffer. It is registered on the window resize event.
	HandleResize()

	// Animate installs the per-frame driver. Each frame updates camera damping, ticks
	// stats, calls callback with the frame delta in seconds and, if isRender is true,
	// renders the scene to the window. A panic inside callback propagates.
	//
	// Parameters:
	//   - callback: per-frame function, may be nil
	//   - isRender: render the scene after callback
	Animate(callback func(dt float32), isRender bool)

	// Render draws the scene to the window and presents it.
	//
	// Returns:
	//   - error: an error if a draw call fails
	Render() error

	// RenderTo draws the scene into an off-screen target.
	//
	// Parameters:
	//   - rt: the render target
	//
	// Returns:
	//   - error: an error if the frame could not begin or a draw call fails
	RenderTo(rt renderer.RenderTarget) error

	// VisibleStats toggles stats output. No-op unless created WithStats.
	VisibleStats(visible bool)

	// Run processes window messages until the window closes.
	Run()

	// Dispose stops the frame driver, removes the listeners the engine installed and
	// releases the scene and renderer. Sub-resources that were never created are skipped.
	Dispose()
}

var _ Engine = &engine{}

// NewEngine creates the engine: a window (unless one is given), a renderer drawing into
// it, an empty scene and a perspective camera at z=5 with a 50 degree fov.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Engine: the engine
//   - error: ErrMissingContainer if no window is available, or a renderer setup error
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger: slog.With("component", "engine"),
		now:    time.Now,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil && e.windowOpts != nil {
		w, err := createWindow(e.windowOpts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingContainer, err)
		}
		e.window = w
		e.ownsWindow = true
	}
	if e.window == nil {
		return nil, ErrMissingContainer
	}

	if e.r == nil {
		r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, e.window, e.rOpts...)
		if err != nil {
			e.closeOwnedWindow()
			return nil, fmt.Errorf("engine: create renderer: %w", err)
		}
		e.r = r
	}

	size := e.Size()
	ctrlOpts := []camera.CameraControllerOption{camera.WithRadius(DefaultCameraZ)}
	if e.orbitEnabled {
		ctrlOpts = append(ctrlOpts, camera.WithDampingFactor(e.damping))
	}
	e.ctrl = camera.NewCameraController(ctrlOpts...)
	e.cam = camera.NewCamera(
		camera.WithFov(common.DegToRad(DefaultFov)),
		camera.WithAspect(size.Aspect),
		camera.WithClipPlanes(DefaultNear, DefaultFar),
		camera.WithController(e.ctrl),
	)
	e.scene = scene.NewScene("main", e.cam, e.r)

	if e.statsEnabled {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(slog.With("component", "stats")))
	}

	e.window.SetResizeCallback(func(int, int) { e.HandleResize() })
	if e.orbitEnabled {
		e.installOrbitControls()
	}
	return e, nil
}

// createWindow turns the window constructor's panic into an error.
func createWindow(opts []window.WindowBuilderOption) (w window.Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return window.NewWindow(opts...), nil
}

func (e *engine) installOrbitControls() {
	e.window.SetScrollCallback(func(delta float32) {
		e.ctrl.Zoom(delta)
	})
	e.window.SetMiddleMouseDownCallback(func(x, y float64) {
		e.dragging = true
		e.dragX, e.dragY = x, y
	})
	e.window.SetMiddleMouseUpCallback(func(float64, float64) {
		e.dragging = false
	})
	e.removeDrag = e.window.AddPointerMoveListener(func(x, y float64) {
		if !e.dragging {
			return
		}
		e.ctrl.Rotate(float32(x-e.dragX), float32(y-e.dragY))
		e.dragX, e.dragY = x, y
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.r
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

func (e *engine) Controller() camera.CameraController {
	return e.ctrl
}

func (e *engine) Size() ViewportSize {
	w, h := e.window.LogicalWidth(), e.window.LogicalHeight()
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	return ViewportSize{Width: w, Height: h, Aspect: aspect}
}

func (e *engine) PixelRatio() float32 {
	return e.window.ContentScale()
}

func (e *engine) SetPerspectiveCamera(fov, aspect, near, far float32) {
	e.cam.SetFov(common.DegToRad(fov))
	e.cam.SetAspect(aspect)
	e.cam.SetNear(near)
	e.cam.SetFar(far)
}

func (e *engine) SetResizeCallback(callback func()) {
	e.onSize = callback
}

func (e *engine) HandleResize() {
	if e.onSize != nil {
		e.onSize()
	}
	if e.cam != nil {
		e.cam.SetAspect(e.Size().Aspect)
	}
	if e.r != nil {
		e.r.Resize(e.window.Width(), e.window.Height())
	}
}

func (e *engine) Animate(callback func(dt float32), isRender bool) {
	e.last = e.now()
	e.window.SetUpdateCallback(func() {
		e.frame(callback, isRender)
	})
}

// frame runs one iteration of the driver installed by Animate.
func (e *engine) frame(callback func(dt float32), isRender bool) {
	now := e.now()
	dt := float32(now.Sub(e.last).Seconds())
	e.last = now

	if e.orbitEnabled {
		e.ctrl.Update()
	}
	e.cam.Update()
	if e.profiler != nil {
		e.profiler.Tick()
	}
	if callback != nil {
		callback(dt)
	}
	if isRender {
		if err := e.Render(); err != nil {
			e.logger.Error("render failed", "error", err)
		}
	}
}

func (e *engine) Render() error {
	if err := e.r.BeginFrame(); err != nil {
		// the surface is skipped while minimized or being reconfigured
		e.logger.Debug("frame skipped", "error", err)
		return nil
	}
	err := e.scene.DrawCalls()
	e.r.EndFrame()
	e.r.Present()
	return err
}

func (e *engine) RenderTo(rt renderer.RenderTarget) error {
	if err := e.r.BeginTargetFrame(rt); err != nil {
		return err
	}
	err := e.scene.DrawCalls()
	e.r.EndFrame()
	return err
}

func (e *engine) VisibleStats(visible bool) {
	if e.profiler != nil {
		e.profiler.SetVisible(visible)
	}
}

func (e *engine) Run() {
	e.window.ProcessMessages()
}

func (e *engine) Dispose() {
	e.profiler = nil
	if e.window != nil {
		e.window.SetUpdateCallback(nil)
		e.window.SetResizeCallback(nil)
		if e.orbitEnabled {
			e.window.SetScrollCallback(nil)
			e.window.SetMiddleMouseDownCallback(nil)
			e.window.SetMiddleMouseUpCallback(nil)
		}
	}
	if e.removeDrag != nil {
		e.removeDrag()
	}
	if e.scene != nil {
		e.scene.Release()
	}
	if e.r != nil {
		e.r.Release()
	}
	e.closeOwnedWindow()
}

func (e *engine) closeOwnedWindow() {
	if !e.ownsWindow || e.window == nil {
		return
	}
	if err := e.window.Close(); err != nil {
		e.logger.Warn("close window", "error", err)
	}
	e.ownsWindow = false
}
