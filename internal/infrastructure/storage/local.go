// Package storage persists rendered invoice documents. The local driver keeps
// PDFs on disk; the minio driver keeps them in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nexahost/portal-api/internal/application/billing"
)

var _ billing.DocumentStore = (*LocalStore)(nil)

// LocalStore writes documents under a base directory. The path recorded on
// the purchase is the bare file name, resolved against the directory on read.
type LocalStore struct {
	dir string
}

// NewLocalStore builds the store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Save writes the document and returns its storage path.
func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoice dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write invoice file: %w", err)
	}
	return name, nil
}

// Open returns a reader over the stored document.
func (s *LocalStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, path))
	if err != nil {
		return nil, fmt.Errorf("open invoice file: %w", err)
	}
	return f, nil
}

// Exists reports whether the document is on disk.
func (s *LocalStore) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
