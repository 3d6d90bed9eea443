package metrics

import (
	"time"

	"github.com/sony/gobreaker"
)

// Upstream outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeRateLimited = "rate_limited"
	OutcomeUnavailable = "unavailable"
	OutcomeParseError  = "parse_error"
	OutcomeRejected    = "rejected"
)

// RecordUpstreamRequest records one upstream fetch.
// endpoint should be a normalized path such as "/anime/:id/full" to keep
// label cardinality bounded.
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCircuitState publishes a breaker transition.
func RecordCircuitState(name string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	UpstreamCircuitState.WithLabelValues(name).Set(v)
}

// CacheMetrics adapts the cache lookup counter to pkg/cache.Metrics.
type CacheMetrics struct{}

// RecordLookup implements cache.Metrics.
func (CacheMetrics) RecordLookup(result string) {
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordWarmerRun records the outcome of refreshing one view.
func RecordWarmerRun(view string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	WarmerRunsTotal.WithLabelValues(view, status).Inc()
}

// RecordWarmerDuration records the time taken by a full warm cycle.
func RecordWarmerDuration(duration time.Duration) {
	WarmerDuration.Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_user", "insert_favorite").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
