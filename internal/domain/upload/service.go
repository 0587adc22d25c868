// internal/domain/upload/service.go
package upload

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

// Storage is an object store reachable over put semantics
type Storage interface {
	// Put stores body under key and returns its public URL
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Service handles image upload business logic
type Service struct {
	storage Storage
	config  config.UploadConfig
	logger  logrus.FieldLogger
}

// NewService creates a new upload service
func NewService(storage Storage, cfg config.UploadConfig, logger logrus.FieldLogger) *Service {
	return &Service{
		storage: storage,
		config:  cfg,
		logger:  logger,
	}
}

// ImageUploadRequest represents an image upload request
type ImageUploadRequest struct {
	Filename   string
	Size       int64
	Body       io.Reader
	UploadedBy uuid.UUID
}

// UploadImage validates and stores a single image
func (s *Service) UploadImage(ctx context.Context, req *ImageUploadRequest) (*Image, error) {
	if err := s.validate(req.Filename, req.Size); err != nil {
		return nil, err
	}

	ext := Extension(req.Filename)
	key := path.Join("products", uuid.NewString()+"."+ext)
	contentType := ContentType(ext)

	url, err := s.storage.Put(ctx, key, contentType, req.Body, req.Size)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"key":         key,
			"size":        req.Size,
			"uploaded_by": req.UploadedBy,
		}).Error("image upload failed")
		return nil, apperror.Upstream("failed to upload image", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":         key,
		"size":        FormatSize(req.Size),
		"uploaded_by": req.UploadedBy,
	}).Info("image uploaded")

	return &Image{Key: key, URL: url, ContentType: contentType, Size: req.Size}, nil
}

func (s *Service) validate(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return apperror.Validation("no file uploaded")
	}
	if size <= 0 {
		return apperror.Validation("uploaded file is empty")
	}
	if s.config.MaxSize > 0 && size > s.config.MaxSize {
		return apperror.Validation("file size exceeds maximum allowed size of %s", FormatSize(s.config.MaxSize))
	}

	ext := Extension(filename)
	for _, allowed := range s.config.AllowedExtensions {
		if strings.EqualFold(ext, strings.TrimPrefix(allowed, ".")) {
			return nil
		}
	}
	return apperror.Validation("file type %q is not allowed", ext)
}
