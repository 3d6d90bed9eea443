// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	import "aniexo/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    slog.SetDefault(logger)
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithTraceID(ctx, logging.WithRequestID(ctx, slog.Default()))
//	    logger.Info("processing request")
//	}
package logging
