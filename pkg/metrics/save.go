package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SaveMetrics records the outcome of content persistence cycles.
type SaveMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewSaveMetrics registers the save cycle metrics on the provided registerer.
func NewSaveMetrics(reg prometheus.Registerer) *SaveMetrics {
	if reg == nil {
		return &SaveMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_save_duration_seconds",
		Help:    "Duration of content persistence writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"record"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_saves_total",
		Help: "Successful content persistence writes.",
	}, []string{"record"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_save_failures_total",
		Help: "Failed content persistence writes.",
	}, []string{"record"})
	reg.MustRegister(duration, success, failure)
	return &SaveMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration of a write for the named record.
func (s *SaveMetrics) ObserveDuration(record string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(record)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named record.
func (s *SaveMetrics) IncSuccess(record string) {
	if s == nil || s.success == nil {
		return
	}
	s.success.WithLabelValues(normalizeLabel(record)).Inc()
}

// IncFailure increments the failure counter for the named record.
func (s *SaveMetrics) IncFailure(record string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(record)).Inc()
}

func normalizeLabel(record string) string {
	if record == "" {
		return "unknown"
	}
	return record
}
