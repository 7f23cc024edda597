// Package storage persists uploaded KYC document blobs. The local driver
// writes to a directory tree under the configured root; database rows only
// carry the relative path it returns.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// ErrTooLarge is returned when an upload exceeds the configured size cap.
var ErrTooLarge = eris.New("storage: document exceeds size limit")

// ErrUnsupportedType is returned for content types outside the allow-list.
var ErrUnsupportedType = eris.New("storage: unsupported content type")

var allowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// BlobStore saves and retrieves document blobs.
type BlobStore interface {
	Save(userID string, mimeType string, r io.Reader) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// Local is a filesystem-backed BlobStore.
type Local struct {
	root     string
	maxBytes int64
}

// NewLocal creates the root directory if needed. maxSizeMB caps individual
// uploads.
func NewLocal(root string, maxSizeMB int) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, eris.Wrap(err, "storage: create root")
	}
	return &Local{root: root, maxBytes: int64(maxSizeMB) * 1024 * 1024}, nil
}

// Save streams the blob to disk under <root>/<userID>/<uuid><ext> and
// returns the path relative to the root. Oversized uploads are removed and
// rejected with ErrTooLarge.
func (l *Local) Save(userID, mimeType string, r io.Reader) (string, int64, error) {
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return "", 0, ErrUnsupportedType
	}

	userDir := filepath.Join(l.root, sanitize(userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", 0, eris.Wrap(err, "storage: create user dir")
	}

	name := uuid.New().String() + ext
	full := filepath.Join(userDir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", 0, eris.Wrap(err, "storage: create file")
	}
	defer f.Close()

	// Read one byte past the cap so an exactly-full read is distinguishable
	// from an oversized one.
	size, err := io.Copy(f, io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		os.Remove(full)
		return "", 0, eris.Wrap(err, "storage: write file")
	}
	if size > l.maxBytes {
		os.Remove(full)
		return "", 0, ErrTooLarge
	}

	return filepath.Join(sanitize(userID), name), size, nil
}

// Open returns a reader for a previously saved blob.
func (l *Local) Open(path string) (io.ReadCloser, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, eris.Wrap(err, "storage: open file")
	}
	return f, nil
}

// Remove deletes a saved blob. Missing files are not an error.
func (l *Local) Remove(path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return eris.Wrap(err, "storage: remove file")
	}
	return nil
}

// resolve joins a stored relative path with the root and rejects anything
// that escapes it.
func (l *Local) resolve(path string) (string, error) {
	full := filepath.Join(l.root, filepath.Clean("/"+path))
	rel, err := filepath.Rel(l.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", eris.New("storage: path escapes root")
	}
	return full, nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
