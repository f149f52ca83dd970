// Package metrics exposes prometheus collectors for the HTTP surface and
// the extraction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	FramesCaptured     prometheus.Counter
)

// Init registers all collectors with the default registry.
func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total number of extraction runs.",
		},
		[]string{"status"}, // success, degraded, navigation_error, timeout
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "End-to-end duration of extraction runs.",
			Buckets: []float64{5, 10, 30, 60, 120, 300},
		},
	)

	FramesCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "frames_captured_total",
			Help: "Total number of screenshot frames captured.",
		},
	)
}

// ObserveHTTP records one served request. No-op before Init.
func ObserveHTTP(method, path, status string, seconds float64) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// ObserveExtraction records one extraction run. No-op before Init so
// library use of the pipeline does not require metrics.
func ObserveExtraction(status string, seconds float64) {
	if ExtractionsTotal == nil {
		return
	}
	ExtractionsTotal.WithLabelValues(status).Inc()
	ExtractionDuration.Observe(seconds)
}

// AddFrames records captured frames. No-op before Init.
func AddFrames(n int) {
	if FramesCaptured == nil {
		return
	}
	FramesCaptured.Add(float64(n))
}
