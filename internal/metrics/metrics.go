package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the tunnelfront service.
type Metrics struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHitsTotal prometheus.Counter

	// Security header metrics
	HeadersSkippedTotal *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tunnelfront_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tunnelfront_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tunnelfront_requests_in_flight",
				Help: "Number of requests currently being served",
			},
		),
		RateLimitHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tunnelfront_rate_limit_hits_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
		HeadersSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tunnelfront_security_headers_skipped_total",
				Help: "Security headers skipped because their value was not legal header text",
			},
			[]string{"header"},
		),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRateLimitHit counts a rate-limited request.
func (m *Metrics) RecordRateLimitHit() {
	if m == nil {
		return
	}
	m.RateLimitHitsTotal.Inc()
}

// RecordHeaderSkipped counts a security header dropped for illegal value text.
func (m *Metrics) RecordHeaderSkipped(header string) {
	if m == nil {
		return
	}
	m.HeadersSkippedTotal.WithLabelValues(header).Inc()
}
