package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-refract/common"
)

// ErrEmptyManifest is returned by Load when the manifest has no entries.
var ErrEmptyManifest = errors.New("asset manifest is empty")

// Manifest maps a logical asset name to a path relative to the loader's base path.
type Manifest map[string]string

// Asset is one loaded image.
type Asset struct {
	Name string

	// Path is the resolved path the image was read from.
	Path string

	Texture common.TextureStagingData

	// Aspect is Texture.Width / Texture.Height.
	Aspect float32
}

// Assets holds every asset of a manifest once Load has succeeded.
type Assets map[string]*Asset

// Ordered returns the named assets in the given order. With no names it returns all assets
// sorted by name.
//
// Returns:
//   - []*Asset: the assets in order
//   - error: error naming the first missing asset
func (a Assets) Ordered(names ...string) ([]*Asset, error) {
	if len(names) == 0 {
		names = make([]string, 0, len(a))
		for name := range a {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	out := make([]*Asset, 0, len(names))
	for _, name := range names {
		asset, ok := a[name]
		if !ok {
			return nil, fmt.Errorf("asset %q not loaded", name)
		}
		out = append(out, asset)
	}
	return out, nil
}

// Loader loads every image of a manifest in parallel.
type Loader interface {
	// Load decodes every manifest entry on the worker pool and returns once all have finished.
	// The first failure cancels the remaining loads and is returned wrapped with the asset
	// name; no partial result is returned.
	//
	// Parameters:
	//   - ctx: cancels the whole load
	//   - manifest: logical name → relative path
	//
	// Returns:
	//   - Assets: every loaded asset keyed by name
	//   - error: ErrEmptyManifest, the first load error, or ctx.Err()
	Load(ctx context.Context, manifest Manifest) (Assets, error)

	// BasePath returns the directory relative paths are resolved against.
	BasePath() string
}

type loader struct {
	basePath     string
	workers      int
	maxDimension int
	backend      loaderBackend
	logger       *slog.Logger

	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the given options applied over the defaults
// (base path ".", four workers, no size cap).
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		basePath: ".",
		workers:  4,
		logger:   slog.With("component", "loader"),
	}
	for _, option := range options {
		option(l)
	}
	if l.backend == nil {
		l.backend = &imageLoaderBackend{maxDimension: l.maxDimension}
	}
	return l
}

func (l *loader) BasePath() string {
	return l.basePath
}

type result struct {
	asset *Asset
	err   error
}

func (l *loader) Load(ctx context.Context, manifest Manifest) (Assets, error) {
	if len(manifest) == 0 {
		return nil, ErrEmptyManifest
	}

	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so workers never block on a caller that returned early.
	results := make(chan result, len(manifest))
	var wg sync.WaitGroup
	started := time.Now()

	id := 0
	for name, rel := range manifest {
		wg.Add(1)
		path := ResolvePath(l.basePath, rel)
		l.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				tex, err := l.backend.Decode(ctx, name, path)
				if err != nil {
					err = fmt.Errorf("load asset %q: %w", name, err)
					results <- result{err: err}
					return nil, err
				}
				results <- result{asset: &Asset{
					Name:    name,
					Path:    path,
					Texture: tex,
					Aspect:  tex.Aspect(),
				}}
				return nil, nil
			},
		})
		id++
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	assets := make(Assets, len(manifest))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r, ok := <-results:
			if !ok {
				l.logger.Debug("assets loaded", "count", len(assets), "elapsed", time.Since(started))
				return assets, nil
			}
			if r.err != nil {
				cancel()
				return nil, r.err
			}
			assets[r.asset.Name] = r.asset
		}
	}
}

// ResolvePath joins rel onto base. Absolute paths are returned cleaned and unchanged.
func ResolvePath(base, rel string) string {
	if filepath.IsAbs(rel) || base == "" {
		return filepath.Clean(rel)
	}
	return filepath.Join(base, rel)
}
