// Package observability provides the logging, metrics and tracing
// infrastructure shared by the API server and the cache warmer.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry spans for inbound requests and upstream fetches
//
// Example usage:
//
//	import (
//	    "aniexo/internal/observability/logging"
//	    "aniexo/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.CacheMetrics{}.RecordLookup("hit")
//	}
package observability
