package loader

import (
	"context"

	"github.com/Carmen-Shannon/oxy-refract/common"
)

// loaderBackend decodes a single resolved asset path into staging pixels.
// Implementations must be safe for concurrent use; the loader calls Decode from pool workers.
type loaderBackend interface {
	// Decode reads and decodes the image at path.
	//
	// Parameters:
	//   - ctx: cancelled when a sibling load fails
	//   - name: the logical asset name, used in errors
	//   - path: the resolved file path
	//
	// Returns:
	//   - common.TextureStagingData: decoded RGBA8 pixels
	//   - error: error if the file cannot be read or decoded
	Decode(ctx context.Context, name, path string) (common.TextureStagingData, error)
}

// imageLoaderBackend decodes JPEG, PNG and WebP files from disk.
type imageLoaderBackend struct {
	maxDimension int
}

var _ loaderBackend = &imageLoaderBackend{}

func (b *imageLoaderBackend) Decode(ctx context.Context, name, path string) (common.TextureStagingData, error) {
	if err := ctx.Err(); err != nil {
		return common.TextureStagingData{}, err
	}
	tex := &common.ImportedTexture{
		Name:         name,
		Path:         path,
		MaxDimension: b.maxDimension,
	}
	return tex.Decode()
}

// decodeFunc adapts a plain function to loaderBackend.
type decodeFunc func(ctx context.Context, name, path string) (common.TextureStagingData, error)

func (f decodeFunc) Decode(ctx context.Context, name, path string) (common.TextureStagingData, error) {
	return f(ctx, name, path)
}
