package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"backend"},
	)

	// Domain
	OrdersFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_finalized_total",
			Help: "Checkout sessions converted into orders",
		},
	)

	CartMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_merges_total",
			Help: "Guest to user cart merges by path",
		},
		[]string{"path"}, // "none", "reassign", "merge"
	)

	RecommendationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_recommendation_fallbacks_total",
			Help: "Recommendations served from the default tag set",
		},
	)

	// Storage
	StorageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_storage_uploads_total",
			Help: "Object storage uploads by backend and result",
		},
		[]string{"backend", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordHTTPRequest records a finished HTTP request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
