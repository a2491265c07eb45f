package loader

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadDecodesEveryEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img"), 0o755))
	writePNG(t, dir, "img/a.png", 40, 20)
	writePNG(t, dir, "img/b.png", 30, 30)
	writePNG(t, dir, "img/c.png", 10, 40)

	l := NewLoader(WithBasePath(dir), WithWorkers(2))
	assets, err := l.Load(context.Background(), Manifest{
		"a": "img/a.png",
		"b": "img/b.png",
		"c": "img/c.png",
	})
	require.NoError(t, err)
	require.Len(t, assets, 3)

	a := assets["a"]
	assert.Equal(t, filepath.Join(dir, "img/a.png"), a.Path)
	assert.Equal(t, uint32(40), a.Texture.Width)
	assert.Equal(t, uint32(20), a.Texture.Height)
	assert.Len(t, a.Texture.Pixels, 40*20*4)
	assert.InDelta(t, 2, a.Aspect, 1e-6)
	assert.InDelta(t, 0.25, assets["c"].Aspect, 1e-6)

	ordered, err := assets.Ordered("c", "a")
	require.NoError(t, err)
	assert.Equal(t, "c", ordered[0].Name)
	assert.Equal(t, "a", ordered[1].Name)

	all, err := assets.Ordered()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Name, all[1].Name, all[2].Name})

	_, err = assets.Ordered("missing")
	assert.Error(t, err)
}

func TestLoadMaxDimension(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "big.png", 200, 100)
	assets, err := NewLoader(WithBasePath(dir), WithMaxDimension(50)).
		Load(context.Background(), Manifest{"big": "big.png"})
	require.NoError(t, err)
	assert.Equal(t, uint32(50), assets["big"].Texture.Width)
	assert.Equal(t, uint32(25), assets["big"].Texture.Height)
	assert.InDelta(t, 2, assets["big"].Aspect, 1e-6)
}

func TestLoadEmptyManifest(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), Manifest{})
	assert.ErrorIs(t, err, ErrEmptyManifest)
}

func TestLoadMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "ok.png", 4, 4)
	_, err := NewLoader(WithBasePath(dir)).Load(context.Background(), Manifest{
		"ok":      "ok.png",
		"missing": "nope.png",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestLoadFailFastReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	var decoded atomic.Int32

	l := NewLoader(WithWorkers(4), WithDecodeFunc(func(ctx context.Context, name, path string) (common.TextureStagingData, error) {
		if name == "bad" {
			return common.TextureStagingData{}, boom
		}
		select {
		case <-ctx.Done():
			return common.TextureStagingData{}, ctx.Err()
		case <-time.After(50 * time.Millisecond):
			decoded.Add(1)
			return common.TextureStagingData{Width: 1, Height: 1}, nil
		}
	}))

	assets, err := l.Load(context.Background(), Manifest{"bad": "x", "slow1": "y", "slow2": "z"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Nil(t, assets)
	assert.LessOrEqual(t, decoded.Load(), int32(2))
}

func TestLoadHonorsCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewLoader(WithDecodeFunc(func(ctx context.Context, name, path string) (common.TextureStagingData, error) {
		<-ctx.Done()
		return common.TextureStagingData{}, ctx.Err()
	}))
	_, err := l.Load(ctx, Manifest{"a": "a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "assets/img/image1.jpg"), ResolvePath("base", "assets/img/image1.jpg"))
	assert.Equal(t, filepath.Clean("assets/img/x.jpg"), ResolvePath("", "./assets/img/x.jpg"))
	abs := filepath.Join(string(filepath.Separator), "abs", "x.jpg")
	assert.Equal(t, abs, ResolvePath("base", abs))
}
