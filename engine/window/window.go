package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Cursor selects the pointer shape shown over the window.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorHand
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// Sizes come in two flavors: Width/Height report the framebuffer in physical pixels,
// LogicalWidth/LogicalHeight report the window in screen coordinates. Cursor positions are
// delivered in screen coordinates.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new framebuffer width and height in pixels (or nil to disable)
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetPointerDownCallback sets the callback for primary (left) button presses.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in screen coordinates
	SetPointerDownCallback(callback func(x, y float64))

	// SetMiddleMouseDownCallback sets the callback for middle mouse button press.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMiddleMouseDownCallback(callback func(x, y float64))

	// SetMiddleMouseUpCallback sets the callback for middle mouse button release.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMiddleMouseUpCallback(callback func(x, y float64))

	// AddPointerMoveListener registers a listener for cursor movement. Several listeners may
	// be registered; each receives every event in registration order.
	//
	// Parameters:
	//   - listener: function receiving the cursor position in screen coordinates
	//
	// Returns:
	//   - func(): removes the listener; safe to call more than once
	AddPointerMoveListener(listener func(x, y float64)) (remove func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// LogicalWidth returns the window width in screen coordinates.
	LogicalWidth() int

	// LogicalHeight returns the window height in screen coordinates.
	LogicalHeight() int

	// ContentScale returns the ratio of framebuffer pixels to screen coordinates.
	// It is 1 on standard displays and 2 on most high-DPI displays.
	ContentScale() float32

	// SetCursor changes the cursor shape shown over the window.
	SetCursor(cursor Cursor)

	// SetTitle replaces the title bar text.
	SetTitle(title string)
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// logicalWidth and logicalHeight are the window size in screen coordinates.
	logicalWidth  int
	logicalHeight int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate          func()
	onResize          func(width, height int)
	onScroll          func(delta float32)
	onKeyDown         func(keyCode uint32)
	onKeyUp           func(keyCode uint32)
	onPointerDown     func(x, y float64)
	onMiddleMouseDown func(x, y float64)
	onMiddleMouseUp   func(x, y float64)

	moveMu        sync.Mutex
	moveListeners []moveListener
	nextMoveID    int
}

type moveListener struct {
	id int
	fn func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured, visible window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.logicalWidth, w.logicalHeight = w.width, w.height
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float64)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetMiddleMouseDownCallback(callback func(x, y float64)) {
	w.onMiddleMouseDown = callback
}

func (w *engineWindow) SetMiddleMouseUpCallback(callback func(x, y float64)) {
	w.onMiddleMouseUp = callback
}

func (w *engineWindow) AddPointerMoveListener(listener func(x, y float64)) func() {
	w.moveMu.Lock()
	id := w.nextMoveID
	w.nextMoveID++
	w.moveListeners = append(w.moveListeners, moveListener{id: id, fn: listener})
	w.moveMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { w.removeMoveListener(id) })
	}
}

func (w *engineWindow) removeMoveListener(id int) {
	w.moveMu.Lock()
	defer w.moveMu.Unlock()
	for i, l := range w.moveListeners {
		if l.id == id {
			w.moveListeners = append(w.moveListeners[:i:i], w.moveListeners[i+1:]...)
			return
		}
	}
}

// dispatchPointerMove delivers a cursor event to a snapshot of the listeners so a
// listener may remove itself while being called.
func (w *engineWindow) dispatchPointerMove(x, y float64) {
	w.moveMu.Lock()
	listeners := make([]moveListener, len(w.moveListeners))
	copy(listeners, w.moveListeners)
	w.moveMu.Unlock()

	for _, l := range listeners {
		l.fn(x, y)
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) LogicalWidth() int {
	return w.logicalWidth
}

func (w *engineWindow) LogicalHeight() int {
	return w.logicalHeight
}

func (w *engineWindow) ContentScale() float32 {
	if w.logicalWidth <= 0 {
		return 1
	}
	return float32(w.width) / float32(w.logicalWidth)
}

func (w *engineWindow) SetCursor(cursor Cursor) {
	platformSetCursor(w, cursor)
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}
