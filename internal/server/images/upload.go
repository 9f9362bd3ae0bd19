package images

import (
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/filex"
	"github.com/google/uuid"
)

// MaxMemory is the part of a multipart body kept in memory; the rest spills
// to temporary files.
const MaxMemory = 32 << 20

// saveAttempts bounds retries when a generated name is already taken.
const saveAttempts = 3

// Uploader accepts at most one image per request under common.ImageFormField.
type Uploader struct {
	storage Storage
	now     func() time.Time
	unique  func() string
}

func NewUploader(s Storage) *Uploader {
	return &Uploader{storage: s, now: time.Now, unique: shortID}
}

func shortID() string {
	return uuid.NewString()[:8]
}

// Receive parses the request form and stores the image, if any. It returns
// the stored path, or "" when the request carries no file. Plain form and
// urlencoded bodies are accepted and carry no file.
//
// Only the client-declared Content-Type of the part is checked.
func (u *Uploader) Receive(r *http.Request) (string, error) {
	err := r.ParseMultipartForm(MaxMemory)
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInvalidUpload, err)
	}
	defer r.MultipartForm.RemoveAll()

	for field := range r.MultipartForm.File {
		if field != common.ImageFormField {
			return "", fmt.Errorf("%w: unexpected file field %q", common.ErrorInvalidUpload, field)
		}
	}

	files := r.MultipartForm.File[common.ImageFormField]
	switch {
	case len(files) == 0:
		return "", nil
	case len(files) > 1:
		return "", fmt.Errorf("%w: only one image is allowed", common.ErrorInvalidUpload)
	}

	fh := files[0]
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: only image files are allowed", common.ErrorInvalidUpload)
	}

	base := filex.SafeBaseName(fh.Filename)
	if base == "" {
		return "", fmt.Errorf("%w: missing file name", common.ErrorInvalidUpload)
	}

	for attempt := 1; ; attempt++ {
		p, err := u.save(r, fh, contentType, base)
		if errors.Is(err, fs.ErrExist) && attempt < saveAttempts {
			continue
		}
		return p, err
	}
}

// save stores the part as <unixmillis>-<id>-<base>.
func (u *Uploader) save(r *http.Request, fh *multipart.FileHeader, contentType, base string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	name := fmt.Sprintf("%d-%s-%s", u.now().UnixMilli(), u.unique(), base)
	return u.storage.Save(r.Context(), name, contentType, f)
}
