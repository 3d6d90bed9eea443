// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application metrics:
//   - HTTP request metrics (duration, count, size)
//   - Upstream catalog metrics (requests by outcome, latency, circuit state)
//   - Response cache lookups (hit, miss, expired)
//   - Cache warmer runs
//   - Database query metrics for the account store
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "aniexo/internal/observability/metrics"
//
//	start := time.Now()
//	body, err := client.Fetch(ctx, "/anime", query)
//	metrics.RecordUpstreamRequest("/anime", metrics.OutcomeSuccess, time.Since(start))
package metrics
