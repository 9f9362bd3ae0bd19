// Package images stores story images and parses image uploads.
package images

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/server/config"
)

// PathPrefix is the leading element of every stored image path.
const PathPrefix = "uploads"

// Storage persists image bytes under a generated name and returns the path
// recorded on the story.
type Storage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// storedPath maps a file name to the path recorded on stories.
func storedPath(name string) string {
	return path.Join(PathPrefix, name)
}

// nameFromPath returns the file name from a stored path, or "" when the path
// was not produced by storedPath.
func nameFromPath(p string) string {
	name, ok := strings.CutPrefix(p, PathPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return ""
	}
	return name
}

// IsStoredPath reports whether p has the shape of a path issued by Storage.
func IsStoredPath(p string) bool {
	return nameFromPath(p) != ""
}

// NewStorage builds the backend selected by cfg.ImageStorage.
func NewStorage(ctx context.Context, cfg *config.Config, l logging.Logger) (Storage, error) {
	switch cfg.ImageStorage {
	case config.ImageStorageLocal, "":
		return NewLocalStorage(cfg.UploadDir, l)
	case config.ImageStorageS3:
		return NewS3Storage(ctx, cfg, l)
	default:
		return nil, fmt.Errorf("unknown image storage %q", cfg.ImageStorage)
	}
}
