package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
//
// All metrics use a custom registry for better testability and isolation.
// Callers that want the series on the default /metrics endpoint register the
// collectors returned by Collectors with prometheus.DefaultRegisterer.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// waitDuration tracks how long callers were held by the limiter.
	// Labels:
	//   - limiter: limiter name
	//
	// Buckets cover the immediate case (<1ms) up to several upstream intervals.
	waitDuration *prometheus.HistogramVec

	// cancelledTotal counts waits abandoned because the context ended.
	// Labels:
	//   - limiter: limiter name
	cancelledTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance with a custom registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	waitDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_ratelimit_wait_seconds",
			Help:    "Time callers spent waiting for an outbound dispatch slot",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 1.5, 3, 6, 12, 30},
		},
		[]string{"limiter"},
	)

	cancelledTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_ratelimit_cancelled_total",
			Help: "Total outbound waits abandoned because the context ended",
		},
		[]string{"limiter"},
	)

	registry.MustRegister(waitDuration, cancelledTotal)

	return &PrometheusMetrics{
		registry:       registry,
		waitDuration:   waitDuration,
		cancelledTotal: cancelledTotal,
	}
}

// Registry returns the Prometheus registry containing all limiter metrics.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Collectors returns the underlying collectors so they can be registered
// with another registerer.
func (m *PrometheusMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.waitDuration, m.cancelledTotal}
}

// RecordWait records how long a caller was held before dispatch.
func (m *PrometheusMetrics) RecordWait(limiter string, waited time.Duration) {
	m.waitDuration.WithLabelValues(limiter).Observe(waited.Seconds())
}

// RecordCancelled records a Wait call abandoned by its context.
func (m *PrometheusMetrics) RecordCancelled(limiter string) {
	m.cancelledTotal.WithLabelValues(limiter).Inc()
}
