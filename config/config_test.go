package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(3), cfg.Crossfade.Delay)
	assert.Equal(t, float32(5), cfg.Crossfade.Duration)
	assert.Equal(t, float32(2), cfg.Crossfade.RepeatDelay)
	assert.Equal(t, 32, cfg.Sphere.Detail)
	assert.False(t, cfg.Link.Enabled)
	assert.Len(t, cfg.Assets.Order, 4)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refract.toml")
	data := `
log_level = "debug"

[window]
width = 800

[crossfade]
duration = 2.5

[link]
enabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(2.5), cfg.Crossfade.Duration)
	assert.Equal(t, float32(3), cfg.Crossfade.Delay)
	assert.True(t, cfg.Link.Enabled)
	assert.Equal(t, "https://github.com/nemutas/", cfg.Link.URL)

	lvl, err := ParseLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadReplacesManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refract.toml")
	data := `
[assets.manifest]
b = "img/b.png"
a = "img/a.png"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "img/a.png", "b": "img/b.png"}, cfg.Assets.Manifest)
	assert.Empty(t, cfg.Assets.Order, "default order names images the file dropped")
	assert.Equal(t, 4, cfg.Assets.Workers)
}

func TestLoadReplacesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refract.toml")
	data := `
[assets]
order = ["image4", "image1"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"image4", "image1"}, cfg.Assets.Order)
	assert.Len(t, cfg.Assets.Manifest, 4)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwdth = 3\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 3 }},
		{"empty manifest", func(c *Config) { c.Assets.Manifest = nil; c.Assets.Order = nil }},
		{"unknown order entry", func(c *Config) { c.Assets.Order = append(c.Assets.Order, "image9") }},
		{"duration", func(c *Config) { c.Crossfade.Duration = 0 }},
		{"follow factor", func(c *Config) { c.Sphere.FollowFactor = 1.5 }},
		{"refract power", func(c *Config) { c.Sphere.RefractPower = -0.1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
