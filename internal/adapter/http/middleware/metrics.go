package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avelora/fincore/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)
		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath replaces resource IDs with placeholders to keep label
// cardinality bounded.
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		switch segments[i-1] {
		case "accounts", "transactions", "conversions", "users":
			if segments[i] != "" && !isRouteWord(segments[i]) {
				segments[i] = ":id"
			}
		case "currencies":
			if segments[i] != "" {
				segments[i] = ":currency"
			}
		}
	}

	return strings.Join(segments, "/")
}

func isRouteWord(s string) bool {
	switch s {
	case "deposit", "withdraw", "charge", "reserve", "release", "freeze",
		"unfreeze", "reverse", "status", "currencies", "transactions",
		"conversions", "analytics":
		return true
	}

	return false
}
