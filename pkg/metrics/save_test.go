package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSaveMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSaveMetrics(reg)

	m.IncSuccess("site_content")
	m.IncSuccess("site_content")
	m.IncFailure("site_content")
	m.ObserveDuration("site_content", 42*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("site_content")); got != 2 {
		t.Fatalf("expected 2 successes, got %f", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("site_content")); got != 1 {
		t.Fatalf("expected 1 failure, got %f", got)
	}
}

func TestSaveMetricsNilSafe(t *testing.T) {
	var m *SaveMetrics
	m.IncSuccess("x")
	m.IncFailure("x")
	m.ObserveDuration("x", time.Second)

	empty := NewSaveMetrics(nil)
	empty.IncSuccess("x")
}

func TestNormalizeLabel(t *testing.T) {
	if normalizeLabel("") != "unknown" {
		t.Fatalf("expected unknown for empty label")
	}
	if normalizeLabel("site_cart") != "site_cart" {
		t.Fatalf("expected passthrough label")
	}
}
