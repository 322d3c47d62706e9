package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalService stores images on the local filesystem. The gateway serves the
// directory under /images, so ImageURL points there.
type LocalService struct {
	dir string
}

func NewLocalService(dir string) (*LocalService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &LocalService{dir: dir}, nil
}

// Dir returns the directory images are written to.
func (s *LocalService) Dir() string { return s.dir }

func (s *LocalService) SaveImage(ctx context.Context, name, contentType string, r io.Reader) error {
	// name is generated server-side, but never trust it as a path
	dst, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close image file: %w", err)
	}
	return nil
}

func (s *LocalService) ImageURL(name string) string {
	return "/images/" + filepath.Base(name)
}
