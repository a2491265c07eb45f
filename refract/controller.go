// Package refract drives the refraction scene: a crossfading slideshow plane behind a
// sphere that follows the pointer and refracts an off-screen capture of the plane.
//
// The Controller moves through three states. It is Loading until the images are decoded,
// Ready while it uploads them and draws each one once, and Running after that.
package refract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/config"
	"github.com/Carmen-Shannon/oxy-refract/engine"
	"github.com/Carmen-Shannon/oxy-refract/engine/animator"
	"github.com/Carmen-Shannon/oxy-refract/engine/game_object"
	"github.com/Carmen-Shannon/oxy-refract/engine/loader"
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/pointer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-refract/engine/window"
)

// State is the controller's lifecycle stage. It only moves forward.
type State int32

const (
	StateLoading State = iota
	StateReady
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Scene object names.
const (
	ScreenName = "screen"
	SphereName = "sphere"
)

// refractPowerStep is how far one debug key press moves the refract power.
const refractPowerStep = 0.01

type loadResult struct {
	assets loader.Assets
	err    error
}

// Controller owns the scene's materials, render target and crossfade timeline and runs
// the per-frame update on the engine's frame driver.
type Controller struct {
	eng      engine.Engine
	observer Observer
	cfg      config.Config
	loader   loader.Loader
	open     func(url string) error
	onFrame  func(dt float32)
	logger   *slog.Logger

	state   State
	loaded  chan loadResult
	cancel  context.CancelFunc
	loadErr error

	tracker pointer.Tracker
	rt      renderer.RenderTarget

	images   []*loader.Asset
	textures []bind_group_provider.BindGroupProvider

	screenMat *material.ScreenMaterial
	sphereMat *material.SphereMaterial
	screen    game_object.GameObject
	sphere    game_object.GameObject

	crossfade animator.Tween
	frame     FrameState

	panel        *DebugPanel
	link         *linkPlane
	hovered      bool
	statsVisible bool
	listening    bool
}

// New starts loading the configured images in the background and installs the frame driver
// on eng. GPU setup happens on the first frame after the images arrive.
//
// Parameters:
//   - eng: the engine to draw with, owned by the controller from here on
//   - observer: told once when every image has been drawn, may be nil
//   - options: functional options
//
// Returns:
//   - *Controller: the controller, in StateLoading
//   - error: an error if eng is nil
func New(eng engine.Engine, observer Observer, options ...ControllerBuilderOption) (*Controller, error) {
	if eng == nil {
		return nil, errors.New("refract: nil engine")
	}
	c := &Controller{
		eng:      eng,
		observer: Once(observer),
		cfg:      config.Default(),
		open:     OpenURL,
		logger:   slog.With("component", "refract"),
		loaded:   make(chan loadResult, 1),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.loader == nil {
		c.loader = c.newLoader()
	}
	c.statsVisible = c.cfg.Debug.Stats

	c.tracker = pointer.Acquire(eng.Window())

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	l, manifest := c.loader, loader.Manifest(c.cfg.Assets.Manifest)
	go func() {
		assets, err := l.Load(ctx, manifest)
		c.loaded <- loadResult{assets: assets, err: err}
	}()

	eng.Animate(c.update, true)
	return c, nil
}

// newLoader builds a loader from the asset config, capping image size at what the device
// can sample.
func (c *Controller) newLoader() loader.Loader {
	a := c.cfg.Assets
	maxDim := a.MaxDimension
	if r := c.eng.Renderer(); r != nil {
		if limit := r.MaxTextureDimension(); limit > 0 && (maxDim <= 0 || limit < maxDim) {
			maxDim = limit
		}
	}
	return loader.NewLoader(
		loader.WithBasePath(a.BasePath),
		loader.WithWorkers(a.Workers),
		loader.WithMaxDimension(maxDim),
	)
}

// State returns the lifecycle stage. Call it from the frame thread.
func (c *Controller) State() State {
	return c.state
}

// LoadErr returns the error that is holding the controller in StateLoading or StateReady,
// if any.
func (c *Controller) LoadErr() error {
	return c.loadErr
}

// Frame returns a copy of the per-frame state.
func (c *Controller) Frame() FrameState {
	return c.frame
}

// Panel returns the debug panel, or nil before setup or when disabled.
func (c *Controller) Panel() *DebugPanel {
	return c.panel
}

func (c *Controller) update(dt float32) {
	if c.onFrame != nil {
		c.onFrame(dt)
	}
	if c.state == StateLoading && !c.poll() {
		return
	}
	if c.state == StateReady {
		if err := c.warmUp(); err != nil {
			if c.loadErr == nil {
				c.logger.Error("scene warm-up failed", "error", err)
			}
			c.loadErr = err
			return
		}
		c.loadErr = nil
		c.state = StateRunning
	}
	c.step(dt)
}

// poll picks up the loader result without blocking and runs setup once it is there.
func (c *Controller) poll() bool {
	select {
	case res := <-c.loaded:
		// a nil channel never becomes ready, so setup can not run twice
		c.loaded = nil
		if res.err != nil {
			c.loadErr = res.err
			c.logger.Error("asset load failed", "error", res.err)
			return false
		}
		if err := c.setup(res.assets); err != nil {
			c.loadErr = err
			c.logger.Error("scene setup failed", "error", err)
			return false
		}
		c.state = StateReady
		return true
	default:
		return false
	}
}

func (c *Controller) setup(assets loader.Assets) error {
	images, err := assets.Ordered(c.cfg.Assets.Order...)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return errors.New("refract: no images")
	}
	c.images = images

	c.eng.Controller().SetPosition(0, 0, CameraZ)

	r := c.eng.Renderer()
	win := c.eng.Window()
	rt, err := r.CreateRenderTarget("refract scene", win.Width(), win.Height())
	if err != nil {
		return fmt.Errorf("refract: render target: %w", err)
	}
	c.rt = rt

	c.textures = make([]bind_group_provider.BindGroupProvider, 0, len(images))
	for _, img := range images {
		tex, err := material.NewTexture(r, img.Name, img.Texture)
		if err != nil {
			return err
		}
		c.textures = append(c.textures, tex)
	}

	size := c.eng.Size()
	ext := extentOf(size)
	c.frame = FrameState{Crossfade: NewCrossfade(len(images))}

	c.screenMat = material.NewScreenMaterial(material.WithName(ScreenName))
	c.applyCrossfade(size.Aspect)
	c.screen = game_object.NewGameObject(ScreenName,
		game_object.WithModel(model.NewModel(model.WithName(ScreenName), model.WithMesh(model.Plane(1, 1)))),
		game_object.WithMaterial(c.screenMat),
		game_object.WithScale(ext.Width, ext.Height, 1),
	)
	if err := c.eng.Scene().Add(c.screen); err != nil {
		return err
	}

	sc := c.cfg.Sphere
	c.sphereMat = material.NewSphereMaterial(material.WithName(SphereName))
	c.sphereMat.SetScreenCoord(screenCoord(size, c.eng.PixelRatio()))
	c.sphereMat.SetRefractPower(sc.RefractPower)
	c.sphere = game_object.NewGameObject(SphereName,
		game_object.WithModel(model.NewModel(model.WithName(SphereName), model.WithMesh(model.Icosahedron(sc.Radius, sc.Detail)))),
		game_object.WithMaterial(c.sphereMat),
	)
	if err := c.eng.Scene().Add(c.sphere); err != nil {
		return err
	}
	if err := c.sphereMat.SetSceneTexture(c.rt.TextureView()); err != nil {
		return err
	}

	if c.cfg.Debug.Panel {
		c.panel = NewDebugPanel("refract power", c.sphereMat.RefractPower(), 0, 1, refractPowerStep, c.sphereMat.SetRefractPower)
	}
	if c.cfg.Link.Enabled && c.cfg.Link.URL != "" {
		c.link = newLinkPlane(c.cfg.Link.URL, ext)
	}

	cf := c.cfg.Crossfade
	c.crossfade = animator.NewTween(
		animator.WithDelay(cf.Delay),
		animator.WithDuration(cf.Duration),
		animator.WithRepeat(animator.RepeatForever),
		animator.WithRepeatDelay(cf.RepeatDelay),
		animator.WithEase(animator.Power3Out),
	)

	c.listen()
	c.logger.Info("scene ready", "images", len(images), "target", fmt.Sprintf("%dx%d", rt.Width(), rt.Height()))
	return nil
}

func (c *Controller) listen() {
	win := c.eng.Window()
	c.eng.SetResizeCallback(c.resize)
	win.SetKeyDownCallback(c.onKey)
	if c.link != nil {
		win.SetPointerDownCallback(c.onPointerDown)
	}
	c.listening = true
}

// warmUp draws every image once as the background so its texture is resident before the
// slideshow starts, then reports readiness. Readiness is withheld when any image failed to
// draw; the next frame retries.
func (c *Controller) warmUp() error {
	scene := c.eng.Scene()
	size := c.eng.Size()

	c.sphere.SetVisible(false)
	defer c.sphere.SetVisible(true)
	defer scene.ClearBackground()

	for i, tex := range c.textures {
		uv := engine.CoveredUVTransform(coverScale(c.images[i], size.Aspect))
		if err := scene.SetBackground(tex, uv); err != nil {
			return fmt.Errorf("warm-up background %s: %w", c.images[i].Name, err)
		}
		if err := c.eng.RenderTo(c.rt); err != nil {
			return fmt.Errorf("warm-up render %s: %w", c.images[i].Name, err)
		}
	}
	c.observer.SetReady(true)
	return nil
}

// step runs the frame update and captures the scene without the sphere for refraction.
func (c *Controller) step(dt float32) {
	c.crossfade.Advance(dt)

	size := c.eng.Size()
	out := Step(&c.frame, FrameInput{
		Dt:       dt,
		Pointer:  c.tracker.Position(),
		Extent:   extentOf(size),
		Follow:   c.cfg.Sphere.FollowFactor,
		Repeats:  c.crossfade.Repeats(),
		Progress: c.crossfade.Value(),
		Images:   len(c.images),
	})
	if out.Swapped {
		c.applyCrossfade(size.Aspect)
	}
	c.screenMat.SetProgress(c.frame.Crossfade.Progress)
	c.sphere.SetPosition(c.frame.Sphere[0], c.frame.Sphere[1], 0)
	c.sphereMat.SetTime(c.frame.Time)

	c.sphere.SetVisible(false)
	if err := c.eng.RenderTo(c.rt); err != nil {
		c.logger.Error("scene capture failed", "error", err)
	}
	if err := c.sphereMat.SetSceneTexture(c.rt.TextureView()); err != nil {
		c.logger.Error("scene texture", "error", err)
	}
	c.sphere.SetVisible(true)

	if c.link != nil {
		c.updateHover()
	}
}

// applyCrossfade binds the current image pair and both of their cover scales.
func (c *Controller) applyCrossfade(aspect float32) {
	cf := c.frame.Crossfade
	c.screenMat.SetTextures(c.textures[cf.Current], c.textures[cf.Next])
	c.screenMat.SetCurrentUVScale(coverScale(c.images[cf.Current], aspect))
	c.screenMat.SetNextUVScale(coverScale(c.images[cf.Next], aspect))
}

// resize runs before the engine updates the camera and surface. The next image's cover
// scale is left as is until the following crossfade repeat.
func (c *Controller) resize() {
	if c.state == StateLoading {
		return
	}
	size := c.eng.Size()
	ext := extentOf(size)

	c.sphereMat.SetScreenCoord(screenCoord(size, c.eng.PixelRatio()))
	c.screen.SetScale(ext.Width, ext.Height, 1)
	c.screenMat.SetCurrentUVScale(coverScale(c.images[c.frame.Crossfade.Current], size.Aspect))

	win := c.eng.Window()
	if w, h := win.Width(), win.Height(); w > 0 && h > 0 {
		if err := c.rt.Resize(w, h); err != nil {
			c.logger.Error("resize render target", "error", err)
		} else if err := c.sphereMat.SetSceneTexture(c.rt.TextureView()); err != nil {
			c.logger.Error("scene texture", "error", err)
		}
	}

	if c.link != nil {
		c.link.place(ext)
	}
}

func (c *Controller) onKey(keyCode uint32) {
	if c.panel != nil && c.panel.HandleKey(keyCode) {
		return
	}
	if keyCode == common.KeyF2 {
		c.statsVisible = !c.statsVisible
		c.eng.VisibleStats(c.statsVisible)
	}
}

func (c *Controller) updateHover() {
	origin, dir, ok := PointerRay(c.tracker.Position(), c.eng.Camera().ViewProjectionMatrix())
	hovered := ok && c.link.hit(origin, dir)
	if hovered == c.hovered {
		return
	}
	c.hovered = hovered
	cursor := window.CursorArrow
	if hovered {
		cursor = window.CursorHand
	}
	c.eng.Window().SetCursor(cursor)
}

func (c *Controller) onPointerDown(float64, float64) {
	if !c.hovered || c.link == nil {
		return
	}
	if err := c.open(c.link.url); err != nil {
		c.logger.Warn("open link", "error", err)
	}
}

// Dispose stops loading, removes the controller's listeners, releases its GPU resources
// and the shared pointer tracker, then disposes the engine. It is safe in any state.
func (c *Controller) Dispose() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.crossfade != nil {
		c.crossfade.Kill()
	}

	if c.listening {
		win := c.eng.Window()
		win.SetKeyDownCallback(nil)
		if c.link != nil {
			win.SetPointerDownCallback(nil)
			if c.hovered {
				win.SetCursor(window.CursorArrow)
			}
		}
		c.eng.SetResizeCallback(nil)
		c.listening = false
	}
	if c.panel != nil {
		c.panel.Destroy()
		c.panel = nil
	}
	pointer.Release()
	c.tracker = nil

	if scene := c.eng.Scene(); scene != nil {
		scene.ClearBackground()
	}
	if c.screenMat != nil {
		c.screenMat.Release()
	}
	if c.sphereMat != nil {
		c.sphereMat.Release()
	}
	for _, tex := range c.textures {
		tex.Release()
	}
	c.textures = nil
	if c.rt != nil {
		c.rt.Release()
		c.rt = nil
	}

	c.eng.Dispose()
}

func extentOf(size engine.ViewportSize) Extent {
	return ComputeExtent(CameraZ, engine.DefaultFov, size.Aspect)
}

func screenCoord(size engine.ViewportSize, pixelRatio float32) [2]float32 {
	return [2]float32{float32(size.Width) * pixelRatio, float32(size.Height) * pixelRatio}
}

func coverScale(a *loader.Asset, aspect float32) [2]float32 {
	return engine.CoveredTextureScale(int(a.Texture.Width), int(a.Texture.Height), aspect, nil)
}
