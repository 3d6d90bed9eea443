// Package resilience provides fault tolerance patterns for upstream calls.
//
// The package supports:
//   - Circuit breakers for the Jikan catalog API
//   - A 429-only retry policy with linear backoff that re-enters the outbound limiter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.JikanAPIConfig())
//	policy := retry.New(retry.DefaultConfig(), limiter)
//	_, err := cb.Execute(func() (interface{}, error) {
//	    return nil, policy.Execute(ctx, doRequest)
//	})
package resilience
