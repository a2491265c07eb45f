package profiler

import (
	"log/slog"
	"time"
)

// ProfilerBuilderOption configures a Profiler during construction.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often a sample is taken.
//
// Parameters:
//   - interval: the sampling window
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the logger stats lines are written to.
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
