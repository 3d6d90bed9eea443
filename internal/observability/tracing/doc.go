// Package tracing provides OpenTelemetry tracing integration.
//
// Middleware opens a server span per inbound request and returns the trace id
// in the X-Trace-Id header. StartClientSpan and EndSpan wrap outbound calls to
// the catalog upstream.
//
//	ctx, span := tracing.StartClientSpan(ctx, "jikan GET /anime")
//	body, err := fetch(ctx)
//	tracing.EndSpan(span, err)
package tracing
