// Package auth holds the console's authenticated session: where the bearer
// token is kept between runs, how a stored token is restored, and how a
// session is ended.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TokenKey is the credential store key for the bearer token.
const TokenKey = "auth_token"

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	// ErrNotFound is returned by a CredentialStore when the key is unset.
	ErrNotFound = errors.New("auth: credential not found")
	// ErrNoSession means there is no usable stored session.
	ErrNoSession = errors.New("auth: no session")
)

// CredentialStore is a small key-value store for secrets.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an unset key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// OpenStore opens the store for backend at path. For the file backend path
// is a directory; for sqlite it is the database file.
func OpenStore(backend, path string) (CredentialStore, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLiteStore(path)
	}
	return nil, fmt.Errorf("auth: unknown store backend %q", backend)
}

// FileStore keeps one file per key, readable only by the owner.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("auth: invalid key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

// Get returns the trimmed contents of the key's file.
func (f *FileStore) Get(_ context.Context, key string) (string, error) {
	p, err := f.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Set writes value with mode 0600.
func (f *FileStore) Set(_ context.Context, key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(p, []byte(value), 0o600); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes the key's file.
func (f *FileStore) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }
