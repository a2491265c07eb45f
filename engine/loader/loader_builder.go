package loader

import (
	"context"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-refract/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBasePath sets the directory manifest paths are resolved against.
//
// Parameters:
//   - base: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithBasePath(base string) LoaderBuilderOption {
	return func(l *loader) {
		l.basePath = base
	}
}

// WithWorkers sets the maximum number of concurrent decode workers. Values below 1 are ignored.
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithMaxDimension caps the longest side of decoded images, typically to the device's
// maximum 2D texture dimension.
func WithMaxDimension(px int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxDimension = px
	}
}

// WithDecodeFunc replaces the file decoder.
func WithDecodeFunc(fn func(ctx context.Context, name, path string) (common.TextureStagingData, error)) LoaderBuilderOption {
	return func(l *loader) {
		l.backend = decodeFunc(fn)
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
