// internal/infrastructure/storage/storage.go
package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/upload"
)

// New returns the storage backend selected by STORAGE_PROVIDER
func New(cfg config.StorageConfig, logger logrus.FieldLogger) (upload.Storage, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocal(cfg.LocalPath, cfg.PublicBaseURL), nil
	case "http":
		return NewHTTP(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
