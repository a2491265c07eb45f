// Package config holds the runtime configuration of the refract viewer.
// Values start from Default and may be overlaid by a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of tunables. Field tags name the TOML keys.
type Config struct {
	LogLevel  string    `toml:"log_level"`
	Window    Window    `toml:"window"`
	Renderer  Renderer  `toml:"renderer"`
	Assets    Assets    `toml:"assets"`
	Crossfade Crossfade `toml:"crossfade"`
	Sphere    Sphere    `toml:"sphere"`
	Link      Link      `toml:"link"`
	Debug     Debug     `toml:"debug"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Renderer struct {
	VSync    bool `toml:"vsync"`
	MSAA     int  `toml:"msaa"`
	Software bool `toml:"software"`
}

// Assets locates the slideshow images. Manifest keys are logical names, values are
// paths relative to BasePath. An empty Order shows the images sorted by name.
type Assets struct {
	BasePath     string            `toml:"base_path"`
	Manifest     map[string]string `toml:"manifest"`
	Order        []string          `toml:"order"`
	Workers      int               `toml:"workers"`
	MaxDimension int               `toml:"max_dimension"`
}

// Crossfade timings are in seconds.
type Crossfade struct {
	Delay       float32 `toml:"delay"`
	Duration    float32 `toml:"duration"`
	RepeatDelay float32 `toml:"repeat_delay"`
}

type Sphere struct {
	Radius       float32 `toml:"radius"`
	Detail       int     `toml:"detail"`
	FollowFactor float32 `toml:"follow_factor"`
	RefractPower float32 `toml:"refract_power"`
}

type Link struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

type Debug struct {
	Stats         bool    `toml:"stats"`
	Panel         bool    `toml:"panel"`
	OrbitControls bool    `toml:"orbit_controls"`
	OrbitDamping  float32 `toml:"orbit_damping"`
}

// Default returns the configuration the viewer runs with when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Title:  "oxy-refract",
			Width:  1280,
			Height: 720,
		},
		Renderer: Renderer{
			VSync: true,
			MSAA:  4,
		},
		Assets: Assets{
			BasePath: ".",
			Manifest: map[string]string{
				"image1": "assets/img/image1.jpg",
				"image2": "assets/img/image2.jpg",
				"image3": "assets/img/image3.jpg",
				"image4": "assets/img/image4.jpg",
			},
			Order:        []string{"image1", "image2", "image3", "image4"},
			Workers:      4,
			MaxDimension: 8192,
		},
		Crossfade: Crossfade{
			Delay:       3,
			Duration:    5,
			RepeatDelay: 2,
		},
		Sphere: Sphere{
			Radius:       0.8,
			Detail:       32,
			FollowFactor: 0.1,
			RefractPower: 0,
		},
		Link: Link{
			Enabled: false,
			URL:     "https://github.com/nemutas/",
		},
		Debug: Debug{
			Panel:        true,
			OrbitDamping: 0.1,
		},
	}
}

// Load returns Default overlaid with the TOML file at path. An empty path returns the defaults.
// Keys absent from the file keep their default values.
//
// Parameters:
//   - path: path to a TOML file, or ""
//
// Returns:
//   - Config: the merged and validated configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode overlays TOML data onto cfg. Unknown keys are rejected. A manifest in data replaces
// cfg's manifest rather than merging into it, and drops cfg's order unless data sets one.
func Decode(data []byte, cfg *Config) error {
	var sets struct {
		Assets struct {
			Manifest map[string]string `toml:"manifest"`
			Order    []string          `toml:"order"`
		} `toml:"assets"`
	}
	if err := toml.Unmarshal(data, &sets); err != nil {
		return err
	}
	if sets.Assets.Manifest != nil {
		cfg.Assets.Manifest = nil
		cfg.Assets.Order = nil
	}
	if sets.Assets.Order != nil {
		cfg.Assets.Order = nil
	}

	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 && c.Renderer.MSAA != 8 && c.Renderer.MSAA != 16:
		return fmt.Errorf("%w: msaa must be 1, 4, 8 or 16, got %d", ErrInvalid, c.Renderer.MSAA)
	case len(c.Assets.Manifest) == 0:
		return fmt.Errorf("%w: asset manifest is empty", ErrInvalid)
	case c.Crossfade.Duration <= 0 || c.Crossfade.Delay < 0 || c.Crossfade.RepeatDelay < 0:
		return fmt.Errorf("%w: crossfade timings", ErrInvalid)
	case c.Sphere.Radius <= 0 || c.Sphere.Detail < 0:
		return fmt.Errorf("%w: sphere radius %v detail %d", ErrInvalid, c.Sphere.Radius, c.Sphere.Detail)
	case c.Sphere.FollowFactor <= 0 || c.Sphere.FollowFactor > 1:
		return fmt.Errorf("%w: follow factor %v outside (0, 1]", ErrInvalid, c.Sphere.FollowFactor)
	case c.Sphere.RefractPower < 0 || c.Sphere.RefractPower > 1:
		return fmt.Errorf("%w: refract power %v outside [0, 1]", ErrInvalid, c.Sphere.RefractPower)
	}
	for _, name := range c.Assets.Order {
		if _, ok := c.Assets.Manifest[name]; !ok {
			return fmt.Errorf("%w: asset order names unknown asset %q", ErrInvalid, name)
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return lvl, nil
}
