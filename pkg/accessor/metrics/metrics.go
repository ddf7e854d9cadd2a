// Package metrics provides a Prometheus-backed metrics.Layer that records
// operation counts, durations and byte counts for any wrapped Accessor,
// following the promauto.With(registerer) construction idiom.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for accessor operations. A nil
// *Metrics is safe to call methods on — every method is a no-op — so a
// Layer can be constructed with a nil Metrics to disable collection
// entirely without changing call sites.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesTransferred  *prometheus.CounterVec
	retriesTotal      *prometheus.CounterVec
	activeUploads     prometheus.Gauge
}

// NewMetrics creates accessor Metrics registered against reg. Pass
// prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to publish on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "accessor_operations_total",
				Help: "Total number of accessor operations by operation and outcome.",
			},
			[]string{"operation", "status"}, // status: "ok", "error"
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "accessor_operation_duration_milliseconds",
				Help: "Duration of accessor operations in milliseconds.",
				Buckets: []float64{
					0.5, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000,
				},
			},
			[]string{"operation"},
		),
		bytesTransferred: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "accessor_bytes_transferred_total",
				Help: "Total bytes transferred through Read/Write and their multipart equivalents.",
			},
			[]string{"operation", "direction"}, // direction: "read", "write"
		),
		retriesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "accessor_retries_total",
				Help: "Total number of retry attempts issued by the retry layer, by operation.",
			},
			[]string{"operation"},
		),
		activeUploads: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "accessor_active_multipart_uploads",
				Help: "Number of multipart uploads currently open (created but not completed or aborted).",
			},
		),
	}
}

func (m *Metrics) observe(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(float64(d.Microseconds()) / 1000)
}

func (m *Metrics) observeBytes(operation, direction string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesTransferred.WithLabelValues(operation, direction).Add(float64(n))
}

// RecordRetry is called by the retry layer, when metrics is wired beneath
// it, once per extra attempt beyond the first.
func (m *Metrics) RecordRetry(operation string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) uploadOpened() {
	if m == nil {
		return
	}
	m.activeUploads.Inc()
}

func (m *Metrics) uploadClosed() {
	if m == nil {
		return
	}
	m.activeUploads.Dec()
}
