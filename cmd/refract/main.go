// Command refract opens a window showing a refractive sphere over a crossfading slideshow.
//
// Usage:
//
//	refract [-config path/to/refract.toml]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-refract/config"
	"github.com/Carmen-Shannon/oxy-refract/engine"
	"github.com/Carmen-Shannon/oxy-refract/engine/renderer"
	"github.com/Carmen-Shannon/oxy-refract/engine/window"
	"github.com/Carmen-Shannon/oxy-refract/refract"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		slog.Error("refract stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	eng, err := engine.NewEngine(engineOptions(cfg)...)
	if err != nil {
		if errors.Is(err, engine.ErrMissingContainer) {
			return fmt.Errorf("no window to render into: %w", err)
		}
		return err
	}

	fade := newLoadingFade(eng.Window(), cfg.Window.Title)
	ctrl, err := refract.New(eng, fade,
		refract.WithConfig(cfg),
		refract.WithFrameCallback(fade.Advance),
	)
	if err != nil {
		eng.Dispose()
		return err
	}
	defer ctrl.Dispose()

	slog.Info("running", "config", cfg.Window, "images", len(cfg.Assets.Manifest))
	eng.Run()
	return nil
}

func engineOptions(cfg config.Config) []engine.EngineBuilderOption {
	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}

	opts := []engine.EngineBuilderOption{
		engine.WithWindowOptions(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		),
		engine.WithRendererOptions(
			renderer.WithMSAA(renderer.ParseMSAA(cfg.Renderer.MSAA)),
			renderer.WithPresentMode(presentMode),
			renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		),
	}
	if cfg.Debug.OrbitControls {
		opts = append(opts, engine.WithOrbitControls(cfg.Debug.OrbitDamping))
	}
	if cfg.Debug.Stats {
		opts = append(opts, engine.WithStats())
	}
	return opts
}
