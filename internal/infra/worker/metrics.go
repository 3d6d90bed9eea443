package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the warmer's own gauges and counters. Per-view run counts and
// cycle durations live in internal/observability/metrics.
type Metrics struct {
	ConfigLoadTimestamp  prometheus.Gauge
	ConfigFallbacksTotal *prometheus.CounterVec
	LastSuccessTimestamp prometheus.Gauge
	CyclesTotal          *prometheus.CounterVec
}

// NewMetrics registers the warmer metrics with reg. Tests pass a fresh
// prometheus.NewRegistry(); main passes prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ConfigLoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "warmer_config_load_timestamp",
			Help: "Unix timestamp of last warmer configuration load",
		}),
		ConfigFallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "warmer_config_fallbacks_total",
			Help: "Total number of warmer configuration values replaced by defaults",
		}, []string{"field"}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "warmer_last_success_timestamp",
			Help: "Unix timestamp of the last warm cycle in which every view refreshed",
		}),
		CyclesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "warmer_cycles_total",
			Help: "Total number of warm cycles by status (success/partial/skipped)",
		}, []string{"status"}),
	}
}

// RecordLoadTimestamp marks a configuration load.
func (m *Metrics) RecordLoadTimestamp() {
	m.ConfigLoadTimestamp.SetToCurrentTime()
}

// RecordFallback counts a configuration value replaced by its default.
func (m *Metrics) RecordFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}

// RecordCycle counts a finished or skipped cycle.
func (m *Metrics) RecordCycle(status string) {
	m.CyclesTotal.WithLabelValues(status).Inc()
	if status == CycleSuccess {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
