package blob

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage implements Storage on the local filesystem, for
// development and tests.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates a filesystem-backed object store rooted at
// the given directory.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		return nil, ErrInvalidConfig
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{root: root}, nil
}

func (l *LocalStorage) Put(ctx context.Context, tenantID uuid.UUID, key string, data []byte, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := l.path(tenantID, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (l *LocalStorage) Get(ctx context.Context, tenantID uuid.UUID, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path(tenantID, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (l *LocalStorage) Delete(ctx context.Context, tenantID uuid.UUID, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := os.Remove(l.path(tenantID, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (l *LocalStorage) path(tenantID uuid.UUID, key string) string {
	return filepath.Join(l.root, "tenants", tenantID.String(), filepath.FromSlash(key))
}
