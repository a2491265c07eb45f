package scene

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-refract/engine/camera"
	"github.com/Carmen-Shannon/oxy-refract/engine/game_object"
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/material"
)

// Scene defines a flat collection of named GameObjects drawn in insertion order, with an
// optional full-screen background image drawn beneath them.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Camera returns the camera the scene is drawn through.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// SetCamera sets the camera the scene is drawn through.
	//
	// Parameters:
	//   - cam: the camera
	SetCamera(cam camera.Camera)

	// Renderer returns the renderer GPU resources are created with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add uploads the object's mesh if needed, initializes its material and appends it to
	// the draw list.
	//
	// Parameters:
	//   - obj: an object with a Model and a Material and a name not yet in the scene
	//
	// Returns:
	//   - error: an error if the name is taken, the object is incomplete or GPU setup fails
	Add(obj game_object.GameObject) error

	// Get returns the object with the given name, or nil.
	//
	// Parameters:
	//   - name: the object name
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(name string) game_object.GameObject

	// Objects returns the objects in draw order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the draw list
	Objects() []game_object.GameObject

	// Remove drops an object from the draw list without releasing its resources.
	//
	// Parameters:
	//   - name: the object name
	Remove(name string)

	// SetBackground draws an image behind every object until ClearBackground.
	//
	// Parameters:
	//   - texture: a provider created with material.NewTexture
	//   - uvTransform: column-major 3x3 UV transform, see engine.CoveredUVTransform
	//
	// Returns:
	//   - error: an error if the background pipeline or mesh could not be created
	SetBackground(texture bind_group_provider.BindGroupProvider, uvTransform [9]float32) error

	// ClearBackground stops drawing the background image.
	ClearBackground()

	// HasBackground reports whether a background image is set.
	HasBackground() bool

	// DrawCalls stages the uniforms of every visible object and issues its draw call into
	// the frame begun on the Renderer.
	//
	// Returns:
	//   - error: an error if a draw call fails
	DrawCalls() error

	// Release frees the meshes of the scene's objects and the background resources.
	// Materials stay with their owners.
	Release()
}

type scene struct {
	mu   *sync.RWMutex
	name string

	cam camera.Camera
	r   renderer.Renderer

	// objects is the draw list; registry indexes it by name
	objects  []game_object.GameObject
	registry map[string]game_object.GameObject

	background     *material.BackgroundMaterial
	backgroundMesh model.Model
	backgroundSet  bool
}

var _ Scene = &scene{}

// NewScene creates an empty scene drawn through cam with r.
//
// Parameters:
//   - name: the scene name
//   - cam: the camera
//   - r: the renderer
//   - options: functional options
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		cam:      cam,
		r:        r,
		registry: make(map[string]game_object.GameObject),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Add(obj game_object.GameObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q: no renderer attached", s.name)
	}
	name := obj.Name()
	if _, exists := s.registry[name]; exists {
		return fmt.Errorf("scene %q: object %q already added", s.name, name)
	}
	mdl, mat := obj.Model(), obj.Material()
	if mdl == nil || mat == nil {
		return fmt.Errorf("scene %q: object %q needs a model and a material", s.name, name)
	}

	if err := s.uploadMesh(mdl); err != nil {
		return fmt.Errorf("scene %q: object %q: %w", s.name, name, err)
	}
	if err := mat.Init(s.r); err != nil {
		return fmt.Errorf("scene %q: object %q: %w", s.name, name, err)
	}

	s.objects = append(s.objects, obj)
	s.registry[name] = obj
	return nil
}

// uploadMesh creates the mesh buffers of mdl unless an earlier Add already did.
// Caller must hold the mutex.
func (s *scene) uploadMesh(mdl model.Model) error {
	if mdl.MeshProvider() != nil {
		return nil
	}
	provider := bind_group_provider.NewBindGroupProvider(mdl.Name() + " Mesh")
	if err := s.r.InitMeshBuffers(provider, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		provider.Release()
		return err
	}
	mdl.SetMeshProvider(provider)
	return nil
}

func (s *scene) Get(name string) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[name]
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registry[name]; !exists {
		return
	}
	delete(s.registry, name)
	s.objects = slices.DeleteFunc(s.objects, func(obj game_object.GameObject) bool {
		return obj.Name() == name
	})
}

func (s *scene) SetBackground(texture bind_group_provider.BindGroupProvider, uvTransform [9]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.background == nil {
		if s.r == nil {
			return fmt.Errorf("scene %q: no renderer attached", s.name)
		}
		bg := material.NewBackgroundMaterial(material.WithName(s.name + " background"))
		if err := bg.Init(s.r); err != nil {
			return fmt.Errorf("scene %q: %w", s.name, err)
		}
		mesh := model.NewModel(model.WithName(s.name+" background"), model.WithMesh(model.Plane(2, 2)))
		if err := s.uploadMesh(mesh); err != nil {
			bg.Release()
			return fmt.Errorf("scene %q: background: %w", s.name, err)
		}
		s.background = bg
		s.backgroundMesh = mesh
	}

	s.background.SetTexture(texture)
	s.background.SetUVTransform(uvTransform)
	s.backgroundSet = texture != nil
	return nil
}

func (s *scene) ClearBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backgroundSet = false
	if s.background != nil {
		s.background.SetTexture(nil)
	}
}

func (s *scene) HasBackground() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backgroundSet
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	var viewProj [16]float32
	if s.cam != nil {
		viewProj = s.cam.ViewProjectionMatrix()
	}

	type draw struct {
		key    string
		mesh   bind_group_provider.BindGroupProvider
		groups []bind_group_provider.BindGroupProvider
	}
	draws := make([]draw, 0, len(s.objects)+1)
	var writes []bind_group_provider.BufferWrite

	if s.backgroundSet {
		writes = append(writes, s.background.UniformWrites(viewProj, viewProj)...)
		draws = append(draws, draw{s.background.PipelineKey(), s.backgroundMesh.MeshProvider(), s.background.BindGroups()})
	}
	for _, obj := range s.objects {
		if !obj.Visible() {
			continue
		}
		mat := obj.Material()
		writes = append(writes, mat.UniformWrites(viewProj, obj.ModelMatrix())...)
		draws = append(draws, draw{mat.PipelineKey(), obj.Model().MeshProvider(), mat.BindGroups()})
	}

	s.r.WriteBuffers(writes)
	for _, d := range draws {
		if err := s.r.DrawCall(d.key, d.mesh, d.groups); err != nil {
			return fmt.Errorf("draw call failed in scene %q: %w", s.name, err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.objects {
		if mdl := obj.Model(); mdl != nil {
			mdl.Release()
		}
	}
	s.objects = nil
	clear(s.registry)

	if s.background != nil {
		s.background.Release()
		s.background = nil
	}
	if s.backgroundMesh != nil {
		s.backgroundMesh.Release()
		s.backgroundMesh = nil
	}
	s.backgroundSet = false
}
