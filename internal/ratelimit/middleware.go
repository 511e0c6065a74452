package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	apierrors "github.com/TunnelFront/server/internal/errors"
	"github.com/TunnelFront/server/internal/metrics"
)

// Config holds per-IP rate limiting configuration.
type Config struct {
	Enabled bool
	Limit   int           // requests per window
	Window  time.Duration // time window
	Burst   int           // burst capacity on top of the steady rate

	// Metrics collector (optional)
	Metrics *metrics.Metrics
}

// DefaultConfig returns a generous default limit designed to stop obvious
// spam without restricting legitimate use.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Limit:   120,
		Window:  1 * time.Minute,
		Burst:   20,
	}
}

// IPLimiter creates a per-IP rate limiter middleware. When disabled it is a
// pass-through. A zero or negative limit or window falls back to
// DefaultConfig rather than producing a limiter that rejects everything.
func IPLimiter(cfg Config) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	def := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}

	limit := cfg.Limit
	if cfg.Burst > 0 {
		limit += cfg.Burst
	}

	return httprate.Limit(
		limit,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limitHandler(int(cfg.Window.Seconds()), cfg.Metrics)),
	)
}

// limitHandler writes the standard 429 envelope and records the hit.
func limitHandler(windowSeconds int, collector *metrics.Metrics) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		collector.RecordRateLimitHit()

		w.Header().Set("Retry-After", fmt.Sprintf("%d", windowSeconds))
		apierrors.WriteError(w, apierrors.ErrCodeRateLimited,
			"Rate limit exceeded. Please try again later.",
			map[string]interface{}{"retry_after_seconds": windowSeconds})
	}
}
