package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/TunnelFront/server/internal/errors"
	"github.com/TunnelFront/server/internal/metrics"
)

// metricsMiddleware records request counts, latency, and in-flight gauge.
func metricsMiddleware(collector *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if collector == nil {
				next.ServeHTTP(w, r)
				return
			}

			collector.RequestsInFlight.Inc()
			defer collector.RequestsInFlight.Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Use the route pattern rather than the raw path to keep label
			// cardinality bounded.
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}

			collector.ObserveRequest(r.Method, path, strconv.Itoa(rec.status), time.Since(start))
		})
	}
}

// statusRecorder captures the response status code for metrics labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// Unwrap supports http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// adminMetricsAuth is middleware that protects the /metrics endpoint with an
// API key. If no key is configured, the endpoint is open; otherwise requests
// must carry "Authorization: Bearer {key}".
func adminMetricsAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			if r.Header.Get("Authorization") != "Bearer "+apiKey {
				apierrors.WriteSimpleError(w, apierrors.ErrCodeUnauthorized, "Invalid or missing admin API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
