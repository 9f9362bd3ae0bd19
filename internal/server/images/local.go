package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/filex"
	"github.com/dmitrijs2005/storyshare/internal/logging"
)

// LocalStorage keeps images in a directory on disk.
type LocalStorage struct {
	dir    string
	logger logging.Logger
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir string, l logging.Logger) (*LocalStorage, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{dir: abs, logger: l.With("module", "local_images")}, nil
}

// Dir returns the absolute directory images are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if filex.SafeBaseName(name) != name || name == "" {
		return "", fmt.Errorf("%w: bad file name %q", common.ErrorInvalidUpload, name)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close image: %w", err)
	}

	s.logger.Debug(ctx, "image stored", "name", name)
	return storedPath(name), nil
}

// Delete removes the file behind a stored path. Paths this storage never
// issued are refused.
func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	name := nameFromPath(p)
	if name == "" {
		return fmt.Errorf("not a stored image path: %q", p)
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// Handler serves stored images read-only. Mount it under "/"+PathPrefix+"/".
func (s *LocalStorage) Handler() http.Handler {
	return http.StripPrefix("/"+PathPrefix+"/", http.FileServer(noListingFS{http.Dir(s.dir)}))
}

// noListingFS hides directory indexes.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
