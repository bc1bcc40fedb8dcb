// Package metrics exposes Prometheus instruments for the CV upload API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upload outcomes, used as the "outcome" label value.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidRequest  = "invalid_request"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeProcessingError = "processing_error"
	OutcomeUnexpectedError = "unexpected_error"
)

// Recorder receives upload observations from the API layer.
type Recorder interface {
	ObserveUpload(outcome string, sizeBytes int64, duration time.Duration)
}

// UploadMetrics holds the upload instruments registered on its own registry.
type UploadMetrics struct {
	registry *prometheus.Registry

	uploadsTotal   *prometheus.CounterVec
	uploadBytes    prometheus.Histogram
	uploadDuration *prometheus.HistogramVec
}

var _ Recorder = (*UploadMetrics)(nil)

// New creates the upload instruments on a fresh registry that also carries
// the Go runtime and process collectors.
func New() *UploadMetrics {
	registry := prometheus.NewRegistry()

	m := &UploadMetrics{
		registry: registry,
		uploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerbooster_cv_uploads_total",
				Help: "Total number of CV uploads by outcome",
			},
			[]string{"outcome"},
		),
		uploadBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "careerbooster_cv_upload_bytes",
				Help:    "Size of accepted CV uploads in bytes",
				Buckets: prometheus.ExponentialBuckets(16<<10, 2, 10),
			},
		),
		uploadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careerbooster_cv_upload_duration_seconds",
				Help:    "Duration of CV upload requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.uploadsTotal,
		m.uploadBytes,
		m.uploadDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveUpload records one finished upload request. Sizes are only
// observed for successful uploads.
func (m *UploadMetrics) ObserveUpload(outcome string, sizeBytes int64, duration time.Duration) {
	m.uploadsTotal.WithLabelValues(outcome).Inc()
	m.uploadDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if outcome == OutcomeSuccess && sizeBytes > 0 {
		m.uploadBytes.Observe(float64(sizeBytes))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *UploadMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *UploadMetrics) Registry() *prometheus.Registry {
	return m.registry
}
