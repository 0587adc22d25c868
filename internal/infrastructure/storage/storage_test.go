package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func TestLocalPut(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root, "http://localhost:8080/uploads/")

	url, err := store.Put(context.Background(), "products/a.png", "image/png", strings.NewReader("data"), 4)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/products/a.png", url)

	content, err := os.ReadFile(filepath.Join(root, "products", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	_, err = store.Put(context.Background(), "../escape.png", "image/png", strings.NewReader("x"), 1)
	assert.Error(t, err)
}

func TestHTTPPut(t *testing.T) {
	var gotAuth, gotType, gotBody, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	store := NewHTTP(config.StorageConfig{
		HTTPEndpoint:   srv.URL + "/",
		HTTPToken:      "secret",
		HTTPTimeout:    time.Second,
		BreakerTimeout: time.Minute,
		BreakerFailMax: 2,
	}, logger)

	url, err := store.Put(context.Background(), "products/a.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/products/a.jpg", url)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "/products/a.jpg", gotPath)
	assert.Equal(t, "jpeg", gotBody)
}

func TestHTTPBreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	logger, hook := test.NewNullLogger()
	store := NewHTTP(config.StorageConfig{
		HTTPEndpoint:   srv.URL,
		HTTPTimeout:    time.Second,
		BreakerTimeout: time.Minute,
		BreakerFailMax: 2,
	}, logger)

	for i := 0; i < 2; i++ {
		_, err := store.Put(context.Background(), "k.png", "image/png", strings.NewReader("x"), 1)
		require.Error(t, err)
	}

	_, err := store.Put(context.Background(), "k.png", "image/png", strings.NewReader("x"), 1)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, 2, calls)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "circuit breaker state changed", entry.Message)
}

func TestNewSelectsProvider(t *testing.T) {
	logger, _ := test.NewNullLogger()

	s, err := New(config.StorageConfig{Provider: "local", LocalPath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	s, err = New(config.StorageConfig{Provider: "http", HTTPEndpoint: "http://example.com"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &HTTP{}, s)

	_, err = New(config.StorageConfig{Provider: "s3"}, logger)
	assert.Error(t, err)
}
