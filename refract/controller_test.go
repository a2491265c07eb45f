package refract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/config"
	"github.com/Carmen-Shannon/oxy-refract/engine"
	"github.com/Carmen-Shannon/oxy-refract/engine/camera"
	"github.com/Carmen-Shannon/oxy-refract/engine/loader"
	"github.com/Carmen-Shannon/oxy-refract/engine/pointer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-refract/engine/scene"
	"github.com/Carmen-Shannon/oxy-refract/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow reports a fixed size with a pixel ratio of 2. Methods not overridden panic.
type fakeWindow struct {
	window.Window

	width, height int
	keyDown       func(uint32)
	pointerDown   func(x, y float64)
	cursor        window.Cursor
	listeners     map[int]func(x, y float64)
	nextListener  int
}

func newFakeWindow(w, h int) *fakeWindow {
	return &fakeWindow{width: w, height: h, listeners: map[int]func(x, y float64){}}
}

func (f *fakeWindow) LogicalWidth() int { return f.width }
func (f *fakeWindow) LogicalHeight() int { return f.height }
func (f *fakeWindow) Width() int { return f.width * 2 }
func (f *fakeWindow) Height() int { return f.height * 2 }
func (f *fakeWindow) SetKeyDownCallback(cb func(uint32)) { f.keyDown = cb }
func (f *fakeWindow) SetPointerDownCallback(cb func(x, y float64)) { f.pointerDown = cb }
func (f *fakeWindow) SetCursor(c window.Cursor) { f.cursor = c }

func (f *fakeWindow) AddPointerMoveListener(fn func(x, y float64)) func() {
	id := f.nextListener
	f.nextListener++
	f.listeners[id] = fn
	return func() { delete(f.listeners, id) }
}

func (f *fakeWindow) move(x, y float64) {
	for _, fn := range f.listeners {
		fn(x, y)
	}
}

// fakeTarget stands in for an off-screen target. Every Resize hands out a new view.
type fakeTarget struct {
	renderer.RenderTarget

	width, height int
	view          *wgpu.TextureView
	released      bool
}

func (f *fakeTarget) Width() int { return f.width }
func (f *fakeTarget) Height() int { return f.height }
func (f *fakeTarget) TextureView() *wgpu.TextureView { return f.view }
func (f *fakeTarget) Release() { f.released = true }

func (f *fakeTarget) Resize(w, h int) error {
	f.width, f.height = w, h
	f.view = &wgpu.TextureView{}
	return nil
}

// fakeRenderer accepts every resource request without touching a GPU.
type fakeRenderer struct {
	renderer.Renderer

	pipelines map[string]pipeline.Pipeline
	textures  int
	target    *fakeTarget
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: map[string]pipeline.Pipeline{}}
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if _, ok := f.pipelines[p.PipelineKey()]; !ok {
			f.pipelines[p.PipelineKey()] = p
		}
	}
	return nil
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }
func (f *fakeRenderer) MaxTextureDimension() int { return 4096 }

func (f *fakeRenderer) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (f *fakeRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor, map[int]wgpu.BufferUsage, map[int]uint64) error {
	return nil
}

func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	f.textures++
	return nil
}

func (f *fakeRenderer) CreateRenderTarget(_ string, w, h int) (renderer.RenderTarget, error) {
	f.target = &fakeTarget{width: w, height: h, view: &wgpu.TextureView{}}
	return f.target, nil
}

// fakeEngine drives frames by hand and logs every off-screen render with the scene state
// at that moment.
type fakeEngine struct {
	engine.Engine

	win   *fakeWindow
	r     *fakeRenderer
	sc    scene.Scene
	cam   camera.Camera
	ctrl  camera.CameraController
	onRun func(dt float32)
	onSz  func()

	renders      []string
	renderErr    error
	statsVisible bool
	disposed     bool
}

func newFakeEngine(w, h int) *fakeEngine {
	e := &fakeEngine{win: newFakeWindow(w, h), r: newFakeRenderer()}
	e.ctrl = camera.NewCameraController(camera.WithRadius(engine.DefaultCameraZ))
	e.cam = camera.NewCamera(
		camera.WithFov(common.DegToRad(engine.DefaultFov)),
		camera.WithAspect(float32(w)/float32(h)),
		camera.WithClipPlanes(engine.DefaultNear, engine.DefaultFar),
		camera.WithController(e.ctrl),
	)
	e.sc = scene.NewScene("test", e.cam, e.r)
	return e
}

func (e *fakeEngine) Window() window.Window { return e.win }
func (e *fakeEngine) Renderer() renderer.Renderer { return e.r }
func (e *fakeEngine) Scene() scene.Scene { return e.sc }
func (e *fakeEngine) Camera() camera.Camera { return e.cam }
func (e *fakeEngine) Controller() camera.CameraController { return e.ctrl }
func (e *fakeEngine) PixelRatio() float32 { return 2 }
func (e *fakeEngine) SetResizeCallback(cb func()) { e.onSz = cb }
func (e *fakeEngine) Animate(cb func(dt float32), _ bool) { e.onRun = cb }
func (e *fakeEngine) VisibleStats(visible bool) { e.statsVisible = visible }

func (e *fakeEngine) Size() engine.ViewportSize {
	return engine.ViewportSize{Width: e.win.width, Height: e.win.height, Aspect: float32(e.win.width) / float32(e.win.height)}
}

func (e *fakeEngine) RenderTo(renderer.RenderTarget) error {
	sphere := e.sc.Get(SphereName)
	if e.renderErr != nil {
		return e.renderErr
	}
	e.renders = append(e.renders, fmt.Sprintf("bg=%v sphere=%v", e.sc.HasBackground(), sphere != nil && sphere.Visible()))
	return nil
}

func (e *fakeEngine) Dispose() {
	e.disposed = true
	e.onRun = nil
	e.sc.Release()
}

func (e *fakeEngine) frame(dt float32) {
	e.cam.Update()
	if e.onRun != nil {
		e.onRun(dt)
	}
}

func (e *fakeEngine) resize(w, h int) {
	e.win.width, e.win.height = w, h
	if e.onSz != nil {
		e.onSz()
	}
}

var testImages = map[string][2]uint32{
	"image1": {100, 100},
	"image2": {150, 100},
	"image3": {178, 100},
	"image4": {200, 100},
}

func testLoader(failing string) loader.Loader {
	return loader.NewLoader(loader.WithDecodeFunc(func(_ context.Context, name, _ string) (common.TextureStagingData, error) {
		if name == failing {
			return common.TextureStagingData{}, errors.New("corrupt image")
		}
		d := testImages[name]
		return common.TextureStagingData{Pixels: make([]byte, d[0]*d[1]*4), Width: d[0], Height: d[1]}, nil
	}))
}

func newTestController(t *testing.T, e *fakeEngine, cfg config.Config, obs Observer, opts ...ControllerBuilderOption) *Controller {
	t.Helper()
	opts = append([]ControllerBuilderOption{WithConfig(cfg), WithLoader(testLoader(""))}, opts...)
	c, err := New(e, obs, opts...)
	require.NoError(t, err)
	return c
}

func runUntilRunning(t *testing.T, e *fakeEngine, c *Controller) {
	t.Helper()
	require.Eventually(t, func() bool {
		e.frame(1.0 / 60)
		return c.State() == StateRunning
	}, 5*time.Second, time.Millisecond)
}

func TestNewRequiresEngine(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestControllerWarmUpSignalsReadyOnce(t *testing.T) {
	e := newFakeEngine(800, 600)
	var rendersAtReady []string
	calls := 0
	obs := ObserverFunc(func(bool) {
		calls++
		rendersAtReady = append([]string(nil), e.renders...)
	})
	c := newTestController(t, e, config.Default(), obs)
	assert.Equal(t, StateLoading, c.State())

	runUntilRunning(t, e, c)
	for range 10 {
		e.frame(1.0 / 60)
	}

	assert.Equal(t, 1, calls)
	require.Len(t, rendersAtReady, len(testImages), "every image rendered before ready")
	for _, r := range rendersAtReady {
		assert.Equal(t, "bg=true sphere=false", r)
	}
	assert.False(t, e.sc.HasBackground(), "background cleared after warm-up")
	assert.Equal(t, "bg=false sphere=false", e.renders[len(e.renders)-1])
	assert.True(t, e.sc.Get(SphereName).Visible())
	assert.Equal(t, len(testImages), e.r.textures)

	c.Dispose()
}

func TestControllerWarmUpFailureWithholdsReady(t *testing.T) {
	e := newFakeEngine(800, 600)
	e.renderErr = errors.New("device lost")
	calls := 0
	c := newTestController(t, e, config.Default(), ObserverFunc(func(bool) { calls++ }))

	require.Eventually(t, func() bool {
		e.frame(1.0 / 60)
		return c.State() == StateReady && c.LoadErr() != nil
	}, 5*time.Second, time.Millisecond)
	e.frame(1.0 / 60)

	assert.Equal(t, StateReady, c.State())
	assert.ErrorIs(t, c.LoadErr(), e.renderErr)
	assert.Zero(t, calls, "ready is not signalled after a failed warm-up")
	assert.False(t, e.sc.HasBackground())
	assert.True(t, e.sc.Get(SphereName).Visible())

	e.renderErr = nil
	e.frame(1.0 / 60)
	assert.Equal(t, StateRunning, c.State())
	assert.NoError(t, c.LoadErr())
	assert.Equal(t, 1, calls)

	c.Dispose()
}

func TestControllerSetup(t *testing.T) {
	e := newFakeEngine(800, 600)
	c := newTestController(t, e, config.Default(), nil)
	runUntilRunning(t, e, c)

	x, y, z := e.ctrl.Position()
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, CameraZ, z, 1e-5)

	require.NotNil(t, e.r.target)
	assert.Equal(t, 1600, e.r.target.Width())
	assert.Equal(t, 1200, e.r.target.Height())

	ext := ComputeExtent(CameraZ, engine.DefaultFov, 800.0/600)
	sx, sy, _ := e.sc.Get(ScreenName).Scale()
	assert.InDelta(t, ext.Width, sx, 1e-5)
	assert.InDelta(t, ext.Height, sy, 1e-5)

	assert.Equal(t, [2]float32{1600, 1200}, c.sphereMat.ScreenCoord())
	assert.Equal(t, float32(0), c.sphereMat.RefractPower())

	cur, next := c.screenMat.UVScales()
	assert.InDelta(t, 0.75, cur[1], 1e-4)
	assert.InDelta(t, 0.8889, next[0], 1e-4)

	c.Dispose()
}

func TestControllerCrossfadeAdvancesOnRepeat(t *testing.T) {
	cfg := config.Default()
	cfg.Crossfade = config.Crossfade{Delay: 0.5, Duration: 1, RepeatDelay: 0.5}
	e := newFakeEngine(800, 600)
	c := newTestController(t, e, cfg, nil)
	runUntilRunning(t, e, c)

	// 0.5 delay + three 1.5s cycles
	e.frame(5.1)
	f := c.Frame()
	assert.Equal(t, 3, f.Crossfade.Current)
	assert.Equal(t, 0, f.Crossfade.Next)

	cur, next := c.screenMat.UVScales()
	assert.InDelta(t, (800.0/600)/2, cur[0], 1e-4, "image4 cover scale")
	assert.InDelta(t, 0.75, next[1], 1e-4, "image1 cover scale")

	c.Dispose()
}

func TestControllerResizeRefreshesCurrentScaleOnly(t *testing.T) {
	e := newFakeEngine(800, 600)
	c := newTestController(t, e, config.Default(), nil)
	runUntilRunning(t, e, c)

	_, nextBefore := c.screenMat.UVScales()
	viewBefore := e.r.target.TextureView()
	e.resize(600, 800)

	cur, next := c.screenMat.UVScales()
	assert.InDelta(t, 0.75, cur[0], 1e-4)
	assert.InDelta(t, 1, cur[1], 1e-4)
	assert.Equal(t, nextBefore, next, "next scale waits for the next repeat")

	ext := ComputeExtent(CameraZ, engine.DefaultFov, 600.0/800)
	sx, sy, _ := e.sc.Get(ScreenName).Scale()
	assert.InDelta(t, ext.Width, sx, 1e-5)
	assert.InDelta(t, ext.Height, sy, 1e-5)

	assert.Equal(t, [2]float32{1200, 1600}, c.sphereMat.ScreenCoord())
	assert.Equal(t, 1200, e.r.target.Width())
	assert.NotSame(t, viewBefore, e.r.target.TextureView())

	c.Dispose()
}

func TestControllerLoadFailureStaysLoading(t *testing.T) {
	e := newFakeEngine(800, 600)
	calls := 0
	c := newTestController(t, e, config.Default(), ObserverFunc(func(bool) { calls++ }), WithLoader(testLoader("image3")))

	require.Eventually(t, func() bool {
		e.frame(1.0 / 60)
		return c.LoadErr() != nil
	}, 5*time.Second, time.Millisecond)
	for range 5 {
		e.frame(1.0 / 60)
	}

	assert.Equal(t, StateLoading, c.State())
	assert.ErrorContains(t, c.LoadErr(), "image3")
	assert.Zero(t, calls)
	assert.Empty(t, e.renders)
	assert.NotPanics(t, c.Dispose)
}

func TestControllerDisposeWhileLoading(t *testing.T) {
	e := newFakeEngine(800, 600)
	blocking := loader.NewLoader(loader.WithDecodeFunc(func(ctx context.Context, _, _ string) (common.TextureStagingData, error) {
		<-ctx.Done()
		return common.TextureStagingData{}, ctx.Err()
	}))
	c := newTestController(t, e, config.Default(), nil, WithLoader(blocking))
	e.frame(1.0 / 60)
	require.Len(t, e.win.listeners, 1)

	assert.NotPanics(t, c.Dispose)
	assert.True(t, e.disposed)
	assert.Empty(t, e.win.listeners, "pointer tracker released")

	// the shared tracker is rebuilt on the next acquire
	other := newFakeWindow(10, 10)
	tr := pointer.Acquire(other)
	assert.Len(t, other.listeners, 1)
	tr.Dispose()
}

func TestControllerDebugKeys(t *testing.T) {
	e := newFakeEngine(800, 600)
	cfg := config.Default()
	cfg.Debug.Stats = true
	c := newTestController(t, e, cfg, nil)
	runUntilRunning(t, e, c)
	require.NotNil(t, c.Panel())
	require.NotNil(t, e.win.keyDown)

	e.win.keyDown(common.KeyUp)
	assert.Equal(t, float32(0), c.sphereMat.RefractPower(), "closed panel")

	e.win.keyDown(common.KeyF1)
	for range 5 {
		e.win.keyDown(common.KeyUp)
	}
	assert.InDelta(t, 0.05, c.sphereMat.RefractPower(), 1e-6)

	e.win.keyDown(common.KeyF2)
	assert.False(t, e.statsVisible)
	e.win.keyDown(common.KeyF2)
	assert.True(t, e.statsVisible)

	c.Dispose()
	assert.Nil(t, e.win.keyDown)
}

func TestControllerLinkHover(t *testing.T) {
	e := newFakeEngine(800, 600)
	cfg := config.Default()
	cfg.Link.Enabled = true
	var opened []string
	c := newTestController(t, e, cfg, nil, WithOpener(func(url string) error {
		opened = append(opened, url)
		return nil
	}))
	runUntilRunning(t, e, c)
	require.NotNil(t, c.link)
	require.NotNil(t, e.win.pointerDown)

	e.frame(1.0 / 60)
	clip := mgl32.Mat4(e.cam.ViewProjectionMatrix()).Mul4x1(c.link.center.Vec4(1))
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	e.win.move(float64((ndcX+1)/2*800), float64((1-ndcY)/2*600))
	e.frame(1.0 / 60)

	assert.Equal(t, window.CursorHand, e.win.cursor)
	e.win.pointerDown(0, 0)
	assert.Equal(t, []string{cfg.Link.URL}, opened)

	e.win.move(400, 300)
	e.frame(1.0 / 60)
	assert.Equal(t, window.CursorArrow, e.win.cursor)
	e.win.pointerDown(400, 300)
	assert.Len(t, opened, 1)

	c.Dispose()
	assert.Nil(t, e.win.pointerDown)
}

func TestControllerLinkDisabledByDefault(t *testing.T) {
	e := newFakeEngine(800, 600)
	c := newTestController(t, e, config.Default(), nil)
	runUntilRunning(t, e, c)

	assert.Nil(t, c.link)
	assert.Nil(t, e.win.pointerDown)
	c.Dispose()
}
