package refract

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-refract/config"
	"github.com/Carmen-Shannon/oxy-refract/engine/loader"
)

// ControllerBuilderOption configures a Controller.
type ControllerBuilderOption func(*Controller)

// WithConfig sets the assets, timings, sphere, link and debug settings the controller runs
// with. Without it config.Default is used.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - ControllerBuilderOption: option applying the configuration
func WithConfig(cfg config.Config) ControllerBuilderOption {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithLoader replaces the image loader built from the config's asset settings.
func WithLoader(l loader.Loader) ControllerBuilderOption {
	return func(c *Controller) {
		c.loader = l
	}
}

// WithOpener replaces OpenURL as the handler for link clicks.
func WithOpener(open func(url string) error) ControllerBuilderOption {
	return func(c *Controller) {
		c.open = open
	}
}

// WithFrameCallback registers fn to run at the start of every frame, in every state.
func WithFrameCallback(fn func(dt float32)) ControllerBuilderOption {
	return func(c *Controller) {
		c.onFrame = fn
	}
}

// WithLogger sets the logger load, warm-up and capture errors are reported to. Without it
// the controller logs through slog.Default with component=refract.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ControllerBuilderOption: option applying the logger
func WithLogger(logger *slog.Logger) ControllerBuilderOption {
	return func(c *Controller) {
		c.logger = logger
	}
}
