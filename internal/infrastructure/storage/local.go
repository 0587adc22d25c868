// internal/infrastructure/storage/local.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/your-org/storefront-backend/internal/domain/upload"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Local writes objects below a directory that the HTTP server exposes
type Local struct {
	root    string
	baseURL string
}

var _ upload.Storage = (*Local)(nil)

// NewLocal creates a filesystem backed store
func NewLocal(root, baseURL string) *Local {
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root is the directory objects are written to
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Put(ctx context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	url, err := l.put(ctx, key, body)
	if err != nil {
		metrics.StorageUploads.WithLabelValues("local", "failure").Inc()
		return "", err
	}
	metrics.StorageUploads.WithLabelValues("local", "success").Inc()
	return url, nil
}

func (l *Local) put(ctx context.Context, key string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(l.root, filepath.FromSlash(key))
	if !strings.HasPrefix(fullPath, filepath.Clean(l.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, body); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return l.baseURL + "/" + key, nil
}
