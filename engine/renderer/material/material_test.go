package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records the calls materials make. Methods not overridden panic.
type fakeRenderer struct {
	renderer.Renderer

	pipelines  map[string]pipeline.Pipeline
	bindGroups []wgpu.BindGroupLayoutDescriptor
	samplers   int
	textures   int
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

func (f *fakeRenderer) InitBindGroup(_ bind_group_provider.BindGroupProvider, desc wgpu.BindGroupLayoutDescriptor, _ map[int]wgpu.BufferUsage, _ map[int]uint64) error {
	f.bindGroups = append(f.bindGroups, desc)
	return nil
}

func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	f.samplers++
	return nil
}

func (f *fakeRenderer) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	f.textures++
	return nil
}

func floatAt(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestUniformSizes(t *testing.T) {
	assert.Equal(t, 160, (&GPUScreenUniform{}).Size())
	assert.Equal(t, 144, (&GPUSphereUniform{}).Size())
	assert.Equal(t, 48, (&GPUBackgroundUniform{}).Size())
}

func TestPipelineLayoutsMatchUniforms(t *testing.T) {
	tests := []struct {
		name        string
		p           pipeline.Pipeline
		groups      int
		uniformSize uint64
	}{
		{"screen", ScreenPipeline(), 3, 160},
		{"sphere", SpherePipeline(), 2, 144},
		{"background", BackgroundPipeline(), 2, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.p.PipelineKey())
			assert.Equal(t, tt.groups, tt.p.GroupCount())

			u := tt.p.BindGroupLayoutDescriptor(0)
			require.Len(t, u.Entries, 1)
			assert.Equal(t, tt.uniformSize, u.Entries[0].Buffer.MinBindingSize)
			assert.Equal(t, wgpu.ShaderStageVertex, u.Entries[0].Visibility&wgpu.ShaderStageVertex)

			for g := 1; g < tt.groups; g++ {
				tex := tt.p.BindGroupLayoutDescriptor(g)
				require.Len(t, tex.Entries, 2)
				assert.Equal(t, wgpu.TextureSampleTypeFloat, tex.Entries[0].Texture.SampleType)
				assert.Equal(t, wgpu.SamplerBindingTypeFiltering, tex.Entries[1].Sampler.Type)
			}
		})
	}
}

func TestBackgroundPipelineSkipsDepth(t *testing.T) {
	p := BackgroundPipeline()
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, ScreenPipeline().DepthTestEnabled())
}

func TestScreenMaterialUniformWrites(t *testing.T) {
	m := NewScreenMaterial()
	m.SetCurrentUVScale([2]float32{0.5625, 1})
	m.SetNextUVScale([2]float32{1, 0.889})
	m.SetProgress(0.25)

	var viewProj, model [16]float32
	viewProj[0] = 2
	model[15] = 3
	writes := m.UniformWrites(viewProj, model)
	require.Len(t, writes, 1)
	assert.Same(t, m.BindGroups()[0], writes[0].Provider)
	assert.Equal(t, 0, writes[0].Binding)

	data := writes[0].Data
	require.Len(t, data, 160)
	assert.Equal(t, float32(2), floatAt(data, 0))
	assert.Equal(t, float32(3), floatAt(data, 64+60))
	assert.Equal(t, float32(0.5625), floatAt(data, 128))
	assert.Equal(t, float32(0.889), floatAt(data, 140))
	assert.Equal(t, float32(0.25), floatAt(data, 144))
}

func TestScreenMaterialTextures(t *testing.T) {
	a := bind_group_provider.NewBindGroupProvider("a")
	b := bind_group_provider.NewBindGroupProvider("b")
	m := NewScreenMaterial(WithName("slides"), WithTexture(1, a), WithTexture(5, b))

	assert.Equal(t, "slides", m.Name())
	assert.Equal(t, ScreenPipelineKey, m.PipelineKey())
	groups := m.BindGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, "slides Uniforms", groups[0].Label())
	assert.Same(t, a, groups[1])
	assert.Nil(t, groups[2])

	m.SetTextures(b, a)
	groups = m.BindGroups()
	assert.Same(t, b, groups[1])
	assert.Same(t, a, groups[2])
}

func TestSphereMaterial(t *testing.T) {
	m := NewSphereMaterial()
	m.SetRefractPower(1.5)
	assert.Equal(t, float32(1), m.RefractPower())
	m.SetRefractPower(0.3)
	m.SetScreenCoord([2]float32{1920, 1080})
	m.SetTime(4)

	data := m.UniformWrites([16]float32{}, [16]float32{})[0].Data
	require.Len(t, data, 144)
	assert.Equal(t, float32(1920), floatAt(data, 128))
	assert.Equal(t, float32(1080), floatAt(data, 132))
	assert.Equal(t, float32(4), floatAt(data, 136))
	assert.Equal(t, float32(0.3), floatAt(data, 140))
}

func TestSphereSceneTextureRebuildsOnChange(t *testing.T) {
	m := NewSphereMaterial()
	require.Error(t, m.SetSceneTexture(&wgpu.TextureView{}), "not initialized")

	r := newFakeRenderer()
	require.NoError(t, m.Init(r))
	assert.Equal(t, 1, r.samplers)
	require.Len(t, r.bindGroups, 1, "uniforms only")

	require.Error(t, m.SetSceneTexture(nil))

	first := &wgpu.TextureView{}
	require.NoError(t, m.SetSceneTexture(first))
	require.NoError(t, m.SetSceneTexture(first))
	require.Len(t, r.bindGroups, 2)
	assert.Len(t, r.bindGroups[1].Entries, 2)
	assert.Same(t, first, m.BindGroups()[1].TextureView(0))

	second := &wgpu.TextureView{}
	require.NoError(t, m.SetSceneTexture(second))
	assert.Len(t, r.bindGroups, 3)
}

func TestMaterialInitAdoptsRegisteredPipeline(t *testing.T) {
	r := newFakeRenderer()
	first := NewScreenMaterial()
	second := NewScreenMaterial()
	require.NoError(t, first.Init(r))
	require.NoError(t, second.Init(r))

	assert.Same(t, first.pipeline, second.pipeline)
	require.Len(t, r.bindGroups, 2)
	assert.Equal(t, uint64(160), r.bindGroups[1].Entries[0].Buffer.MinBindingSize)
}

func TestBackgroundMaterial(t *testing.T) {
	m := NewBackgroundMaterial()
	assert.Nil(t, m.Texture())

	data := m.UniformWrites([16]float32{}, [16]float32{})[0].Data
	require.Len(t, data, 48)
	assert.Equal(t, float32(1), floatAt(data, 0))
	assert.Equal(t, float32(1), floatAt(data, 20))
	assert.Equal(t, float32(1), floatAt(data, 40))

	m.SetUVTransform([9]float32{0.5, 0, 0, 0, 1, 0, 0.25, 0, 1})
	data = m.UniformWrites([16]float32{}, [16]float32{})[0].Data
	assert.Equal(t, float32(0.5), floatAt(data, 0))
	assert.Equal(t, float32(0.25), floatAt(data, 32))
	assert.Zero(t, floatAt(data, 12))
}

func TestNewTexture(t *testing.T) {
	r := newFakeRenderer()
	p, err := NewTexture(r, "slide 1", common.TextureStagingData{Pixels: make([]byte, 16), Width: 2, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, "slide 1", p.Label())
	assert.Equal(t, 1, r.textures)
	assert.Equal(t, 1, r.samplers)
	require.Len(t, r.bindGroups, 1)
	assert.Len(t, r.bindGroups[0].Entries, 2)
	assert.NotNil(t, r.Pipeline(ScreenPipelineKey))
}
