package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images below a directory that the HTTP server exposes at urlPrefix
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates the directory if needed
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Dir is the directory served as static files
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes body to dir/key
func (s *LocalStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if !strings.HasPrefix(target, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.urlPrefix + "/" + key, nil
}
