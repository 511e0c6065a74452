package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsInitialization(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("metrics collector should not be nil")
	}

	if m.RequestsTotal == nil {
		t.Error("RequestsTotal should be initialized")
	}
	if m.RequestDuration == nil {
		t.Error("RequestDuration should be initialized")
	}
	if m.RequestsInFlight == nil {
		t.Error("RequestsInFlight should be initialized")
	}
	if m.RateLimitHitsTotal == nil {
		t.Error("RateLimitHitsTotal should be initialized")
	}
	if m.HeadersSkippedTotal == nil {
		t.Error("HeadersSkippedTotal should be initialized")
	}
}

func TestObserveRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveRequest("GET", "/health", "200", 25*time.Millisecond)

	count := promtest.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200"))
	if count != 1 {
		t.Errorf("expected 1 request, got %.0f", count)
	}
}

func TestRecordHeaderSkipped(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordHeaderSkipped("X-Frame-Options")
	m.RecordHeaderSkipped("X-Frame-Options")

	count := promtest.ToFloat64(m.HeadersSkippedTotal.WithLabelValues("X-Frame-Options"))
	if count != 2 {
		t.Errorf("expected 2 skips, got %.0f", count)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var m *Metrics

	m.ObserveRequest("GET", "/", "200", time.Millisecond)
	m.RecordRateLimitHit()
	m.RecordHeaderSkipped("Server")
}
