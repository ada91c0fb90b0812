// Package filestore keeps uploaded note and notice files on local disk.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload categories.
const (
	CategoryNotes   = "notes"
	CategoryNotices = "notices"
)

// ErrInvalidName is returned for stored names that would escape the upload root.
var ErrInvalidName = errors.New("invalid file name")

// ErrTooLarge is returned when an upload exceeds the configured size limit.
var ErrTooLarge = errors.New("file too large")

// Local stores files under a root directory, one subdirectory per category.
type Local struct {
	root     string
	maxBytes int64
}

// NewLocal creates the root directory if needed.
func NewLocal(root string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{root: root, maxBytes: maxBytes}, nil
}

// Save copies r to a new file and returns its stored name relative to the root,
// e.g. "notes/5f0c...e1.pdf". The original extension is preserved.
func (l *Local) Save(category, originalName string, r io.Reader) (string, error) {
	if category != CategoryNotes && category != CategoryNotices {
		return "", fmt.Errorf("unknown upload category %q", category)
	}
	dir := filepath.Join(l.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir: %w", category, err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	stored := category + "/" + uuid.NewString() + ext
	path := filepath.Join(l.root, filepath.FromSlash(stored))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	src := r
	if l.maxBytes > 0 {
		src = io.LimitReader(r, l.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil && l.maxBytes > 0 && n > l.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return stored, nil
}

// Open returns the stored file. Callers must close it.
func (l *Local) Open(stored string) (*os.File, error) {
	path, err := l.path(stored)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// WriteFile writes data under a fixed stored name, replacing any existing file.
func (l *Local) WriteFile(stored string, data []byte) error {
	path, err := l.path(stored)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Exists reports whether a stored file is present.
func (l *Local) Exists(stored string) bool {
	path, err := l.path(stored)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Remove deletes a stored file. A missing file is not an error.
func (l *Local) Remove(stored string) error {
	path, err := l.path(stored)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (l *Local) path(stored string) (string, error) {
	if stored == "" || strings.Contains(stored, "\\") {
		return "", ErrInvalidName
	}
	clean := filepath.Clean(filepath.FromSlash(stored))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidName
	}
	return filepath.Join(l.root, clean), nil
}
