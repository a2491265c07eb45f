package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/camera"
	"github.com/Carmen-Shannon/oxy-refract/engine/game_object"
	"github.com/Carmen-Shannon/oxy-refract/engine/model"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records uploads and draws. Methods not overridden panic.
type fakeRenderer struct {
	renderer.Renderer

	pipelines map[string]pipeline.Pipeline
	uploads   []string
	writes    int
	draws     []string
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: make(map[string]pipeline.Pipeline)}
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if _, ok := f.pipelines[p.PipelineKey()]; !ok {
			f.pipelines[p.PipelineKey()] = p
		}
	}
	return nil
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline {
	return f.pipelines[key]
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, _ int) error {
	f.uploads = append(f.uploads, provider.Label())
	return nil
}

func (f *fakeRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor, map[int]wgpu.BufferUsage, map[int]uint64) error {
	return nil
}

func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes += len(writes)
}

func (f *fakeRenderer) DrawCall(key string, _ bind_group_provider.BindGroupProvider, _ []bind_group_provider.BindGroupProvider) error {
	f.draws = append(f.draws, key)
	return nil
}

func newTestScene(r renderer.Renderer) Scene {
	cc := camera.NewCameraController()
	cam := camera.NewCamera(camera.WithFov(common.DegToRad(50)), camera.WithController(cc))
	return NewScene("main", cam, r)
}

func TestAddUploadsSharedMeshOnce(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(r)
	plane := model.NewModel(model.WithName("plane"), model.WithMesh(model.Plane(1, 1)))

	require.NoError(t, s.Add(game_object.NewGameObject("a", game_object.WithModel(plane), game_object.WithMaterial(material.NewScreenMaterial()))))
	require.NoError(t, s.Add(game_object.NewGameObject("b", game_object.WithModel(plane), game_object.WithMaterial(material.NewScreenMaterial()))))

	assert.Equal(t, []string{"plane Mesh"}, r.uploads)
	assert.Equal(t, 2, s.Count())
	assert.NotNil(t, r.Pipeline(material.ScreenPipelineKey))
}

func TestAddRejectsDuplicatesAndIncompleteObjects(t *testing.T) {
	s := newTestScene(newFakeRenderer())
	plane := model.NewModel(model.WithMesh(model.Plane(1, 1)))
	obj := game_object.NewGameObject("a", game_object.WithModel(plane), game_object.WithMaterial(material.NewScreenMaterial()))

	require.NoError(t, s.Add(obj))
	assert.Error(t, s.Add(obj))
	assert.Error(t, s.Add(game_object.NewGameObject("bare")))
	assert.Nil(t, s.Get("bare"))
	assert.Same(t, obj, s.Get("a"))
}

func TestDrawCallsSkipHiddenAndDrawBackgroundFirst(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(r)
	plane := model.NewModel(model.WithMesh(model.Plane(1, 1)))
	ball := model.NewModel(model.WithMesh(model.Icosahedron(0.8, 2)))

	require.NoError(t, s.Add(game_object.NewGameObject("screen", game_object.WithModel(plane), game_object.WithMaterial(material.NewScreenMaterial()))))
	sphere := game_object.NewGameObject("sphere", game_object.WithModel(ball), game_object.WithMaterial(material.NewSphereMaterial()))
	require.NoError(t, s.Add(sphere))

	require.NoError(t, s.DrawCalls())
	assert.Equal(t, []string{"screen", "sphere"}, r.draws)
	assert.Equal(t, 2, r.writes)

	r.draws = nil
	sphere.SetVisible(false)
	require.NoError(t, s.SetBackground(bind_group_provider.NewBindGroupProvider("image"), [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}))
	assert.True(t, s.HasBackground())
	require.NoError(t, s.DrawCalls())
	assert.Equal(t, []string{"background", "screen"}, r.draws)

	r.draws = nil
	s.ClearBackground()
	assert.False(t, s.HasBackground())
	require.NoError(t, s.DrawCalls())
	assert.Equal(t, []string{"screen"}, r.draws)
}

func TestRemoveKeepsOrder(t *testing.T) {
	s := newTestScene(newFakeRenderer())
	plane := model.NewModel(model.WithMesh(model.Plane(1, 1)))
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(game_object.NewGameObject(name, game_object.WithModel(plane), game_object.WithMaterial(material.NewScreenMaterial()))))
	}
	s.Remove("b")
	s.Remove("missing")

	var names []string
	for _, obj := range s.Objects() {
		names = append(names, obj.Name())
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	s := NewScene("empty", nil, nil)
	assert.NotPanics(t, s.Release)
	assert.Error(t, s.DrawCalls())
}
