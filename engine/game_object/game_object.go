package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/material"
)

type gameObject struct {
	mu      *sync.Mutex
	name    string
	visible atomic.Bool
	mdl     model.Model
	mat     material.Material

	position [3]float32
	scale    [3]float32
}

// GameObject defines the interface for a drawable scene entity: a Model drawn with a
// Material at a position and scale. Rotation is not part of the scene this engine draws,
// so the transform is translate-then-scale only.
type GameObject interface {
	// Name returns the object's scene-unique name.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Visible returns whether the object is drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the Material the object is drawn with, or nil if not set.
	//
	// Returns:
	//   - material.Material: the associated material or nil
	Material() material.Material

	// Position returns the world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// ModelMatrix returns the column-major translate * scale matrix.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// SetVisible sets whether the object is drawn.
	//
	// Parameters:
	//   - visible: true to draw
	SetVisible(visible bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetMaterial assigns the Material to draw with.
	//
	// Parameters:
	//   - m: the Material to associate
	SetMaterial(m material.Material)

	// SetPosition updates the world-space position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetScale updates the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a visible GameObject at the origin with unit scale.
//
// Parameters:
//   - name: the scene-unique name
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(name string, options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		name:  name,
		scale: [3]float32{1, 1, 1},
	}
	obj.visible.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Visible() bool {
	return g.visible.Load()
}

func (g *gameObject) SetVisible(visible bool) {
	g.visible.Store(visible)
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) Material() material.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mat
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mat = m
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var m [16]float32
	common.TranslateScale(m[:], g.position, g.scale)
	return m
}
