// internal/infrastructure/storage/http.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/upload"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

const breakerName = "object-storage"

// HTTP uploads objects to an image host with PUT. Calls go through a
// circuit breaker so an unreachable host fails fast.
type HTTP struct {
	endpoint string
	token    string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker[string]
	logger   logrus.FieldLogger
}

var _ upload.Storage = (*HTTP)(nil)

// NewHTTP creates an HTTP object store from config
func NewHTTP(cfg config.StorageConfig, logger logrus.FieldLogger) *HTTP {
	failMax := cfg.BreakerFailMax
	if failMax == 0 {
		failMax = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	h := &HTTP{
		endpoint: strings.TrimRight(cfg.HTTPEndpoint, "/"),
		token:    cfg.HTTPToken,
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:   logger,
	}
	h.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failMax
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return h
}

func (h *HTTP) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	url, err := h.cb.Execute(func() (string, error) {
		return h.put(ctx, key, contentType, body, size)
	})
	if err != nil {
		result := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "rejected"
		}
		metrics.StorageUploads.WithLabelValues("http", result).Inc()
		return "", err
	}
	metrics.StorageUploads.WithLabelValues("http", "success").Inc()
	return url, nil
}

func (h *HTTP) put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	target := h.endpoint + "/" + key
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "" {
		return location, nil
	}
	return target, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
