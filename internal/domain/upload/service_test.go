package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/upload"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
)

type memStorage struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func (m *memStorage) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return "https://cdn.example.com/" + key, nil
}

func newService(storage upload.Storage) *upload.Service {
	logger, _ := test.NewNullLogger()
	return upload.NewService(storage, config.UploadConfig{
		MaxSize:           1024,
		AllowedExtensions: []string{"jpg", "jpeg", "png", "gif", "webp"},
	}, logger)
}

func TestUploadImage(t *testing.T) {
	storage := &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
	svc := newService(storage)

	img, err := svc.UploadImage(context.Background(), &upload.ImageUploadRequest{
		Filename:   "Photo.PNG",
		Size:       4,
		Body:       bytes.NewReader([]byte("\x89PNG")),
		UploadedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.Key, "products/"))
	assert.True(t, strings.HasSuffix(img.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+img.Key, img.URL)
	assert.Equal(t, []byte("\x89PNG"), storage.objects[img.Key])
	assert.Equal(t, "image/png", storage.types[img.Key])
}

func TestUploadImageValidation(t *testing.T) {
	svc := newService(&memStorage{objects: map[string][]byte{}, types: map[string]string{}})
	ctx := context.Background()

	cases := []upload.ImageUploadRequest{
		{Filename: "", Size: 4},
		{Filename: "a.png", Size: 0},
		{Filename: "a.png", Size: 2048},
		{Filename: "a.exe", Size: 4},
	}
	for _, req := range cases {
		req := req
		req.Body = bytes.NewReader(nil)
		_, err := svc.UploadImage(ctx, &req)
		assert.True(t, apperror.Is(err, apperror.KindValidation), req.Filename)
	}
}

func TestUploadImageStorageFailure(t *testing.T) {
	svc := newService(&memStorage{err: errors.New("connection refused")})

	_, err := svc.UploadImage(context.Background(), &upload.ImageUploadRequest{
		Filename: "a.jpg",
		Size:     3,
		Body:     bytes.NewReader([]byte("abc")),
	})
	assert.True(t, apperror.Is(err, apperror.KindUpstream))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", upload.FormatSize(512))
	assert.Equal(t, "1.5 KB", upload.FormatSize(1536))
	assert.Equal(t, "10.0 MB", upload.FormatSize(10<<20))
}
