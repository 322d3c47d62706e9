package storage

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Service persists uploaded product images and knows where they are served
// from.
type Service interface {
	SaveImage(ctx context.Context, name, contentType string, r io.Reader) error
	// ImageURL returns the public location of a stored image, or "" when the
	// backend has no addressable location for it.
	ImageURL(name string) string
}

var (
	nameMu    sync.Mutex
	lastStamp int64
)

// NewImageName derives a stored filename from the upload time, keeping only
// the original file's extension. Stamps are forced strictly monotonic so two
// uploads within the same millisecond cannot collide.
func NewImageName(original string) string {
	nameMu.Lock()
	stamp := time.Now().UnixMilli()
	if stamp <= lastStamp {
		stamp = lastStamp + 1
	}
	lastStamp = stamp
	nameMu.Unlock()

	ext := strings.ToLower(filepath.Ext(original))
	return strconv.FormatInt(stamp, 10) + ext
}
