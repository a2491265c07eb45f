package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject("sphere")
	assert.Equal(t, "sphere", obj.Name())
	assert.True(t, obj.Visible())
	sx, sy, sz := obj.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
	assert.Nil(t, obj.Model())
	assert.Nil(t, obj.Material())
}

func TestModelMatrixTranslatesAndScales(t *testing.T) {
	mdl := model.NewModel(model.WithMesh(model.Plane(1, 1)))
	obj := NewGameObject("screen", WithModel(mdl), WithPosition(1, 2, 3), WithScale(4, 5, 1), WithVisible(false))
	assert.False(t, obj.Visible())
	assert.Same(t, mdl, obj.Model())

	m := obj.ModelMatrix()
	assert.Equal(t, float32(4), m[0])
	assert.Equal(t, float32(5), m[5])
	assert.Equal(t, float32(1), m[10])
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{m[12], m[13], m[14]})
	assert.Equal(t, float32(1), m[15])

	obj.SetPosition(-1, 0, 0)
	obj.SetVisible(true)
	m = obj.ModelMatrix()
	assert.Equal(t, float32(-1), m[12])
	assert.True(t, obj.Visible())
}
