package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned by a Store built without a usable backend.
var ErrNotConfigured = errors.New("object storage is not configured")

const defaultContentType = "application/octet-stream"

// Store provides access to the bucket holding uploaded resource files.
type Store interface {
	// Upload writes body under key in a single call. Existing keys are not
	// overwritten where the backend supports that.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	// PublicURL returns the externally resolvable URL of key, or an empty
	// string when no URL can be produced.
	PublicURL(key string) string
	// Remove deletes the object stored under key.
	Remove(ctx context.Context, key string) error
}

// NewKey derives a storage key for filename: a random UUID plus the original
// extension, placed under folder. Keys are not checked for existence first.
func NewKey(folder, filename string) string {
	name := uuid.NewString() + filepath.Ext(filename)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ContentType picks the content type to store a file with. A specific
// declared type wins; otherwise the extension is used as a hint.
func ContentType(filename, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != defaultContentType {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return defaultContentType
}

type unavailable struct {
	err error
}

// Unavailable returns a Store whose uploads and removals fail with cause
// wrapped in ErrNotConfigured and which never produces a public URL.
func Unavailable(cause error) Store {
	err := ErrNotConfigured
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrNotConfigured, cause)
	}
	return unavailable{err: err}
}

func (u unavailable) Upload(context.Context, string, string, io.Reader, int64) error {
	return u.err
}

func (u unavailable) PublicURL(string) string { return "" }

func (u unavailable) Remove(context.Context, string) error {
	return u.err
}
