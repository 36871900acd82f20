// Package storage keeps uploaded attachment bytes on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStore implements ports.FileStore under a single root directory.
type LocalFileStore struct {
	root string
}

// NewLocalFileStore creates root (and parents) if it does not exist.
func NewLocalFileStore(root string) (*LocalFileStore, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{root: root}, nil
}

// Save writes r to <root>/<name>, replacing an existing file with that name.
// On a copy error the partial file is removed and no path is returned.
func (s *LocalFileStore) Save(ctx context.Context, name string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", 0, fmt.Errorf("invalid file name %q", name)
	}

	path := filepath.Join(s.root, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", path, err)
	}

	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, n, nil
}

// Remove deletes a file previously returned by Save. Missing files are not an error.
func (s *LocalFileStore) Remove(_ context.Context, path string) error {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("path %s is outside %s", path, s.root)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
