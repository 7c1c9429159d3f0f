// services/storage.go
package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores a blob and returns its public URL.
type Storage interface {
	Save(name string, r io.Reader) (string, error)
}

// DiskStorage writes uploads under a local directory that the HTTP server
// exposes as static files. Object keys are uuid-prefixed so user-supplied
// filenames can never collide or escape the directory.
type DiskStorage struct {
	dir     string
	baseURL string
}

func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStorage) Save(name string, r io.Reader) (string, error) {
	key := uuid.New().String() + sanitizeExt(name)
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("store upload: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ""
}
