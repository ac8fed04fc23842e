package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records snapshot ingestion outcomes per marketplace.
type IngestMetrics struct {
	duration  *prometheus.HistogramVec
	success   *prometheus.CounterVec
	failure   *prometheus.CounterVec
	duplicate *prometheus.CounterVec
}

// NewIngestMetrics registers the ingest metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_ingest_duration_seconds",
		Help:    "Duration of snapshot ingestion in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"marketplace"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_ingest_success",
		Help: "Snapshots applied successfully.",
	}, []string{"marketplace"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_ingest_failure",
		Help: "Snapshots that failed to apply.",
	}, []string{"marketplace"})
	duplicate := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_ingest_duplicate",
		Help: "Snapshots skipped as already processed.",
	}, []string{"marketplace"})
	reg.MustRegister(duration, success, failure, duplicate)
	return &IngestMetrics{
		duration:  duration,
		success:   success,
		failure:   failure,
		duplicate: duplicate,
	}
}

// ObserveDuration records how long one snapshot took to apply.
func (m *IngestMetrics) ObserveDuration(marketplace string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(marketplace)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the marketplace.
func (m *IngestMetrics) IncSuccess(marketplace string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(marketplace)).Inc()
}

// IncFailure increments the failure counter for the marketplace.
func (m *IngestMetrics) IncFailure(marketplace string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(marketplace)).Inc()
}

// IncDuplicate increments the duplicate counter for the marketplace.
func (m *IngestMetrics) IncDuplicate(marketplace string) {
	if m == nil || m.duplicate == nil {
		return
	}
	m.duplicate.WithLabelValues(normalizeLabel(marketplace)).Inc()
}

func normalizeLabel(marketplace string) string {
	if marketplace == "" {
		return "unknown"
	}
	return marketplace
}
