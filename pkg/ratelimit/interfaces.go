// Package ratelimit provides outbound request pacing for upstream APIs.
//
// The central type is IntervalLimiter, which enforces a minimum spacing
// between consecutive dispatches across every goroutine that shares it.
// Time is abstracted behind Clock so tests can drive the limiter without
// sleeping.
package ratelimit

import (
	"time"
)

// Clock provides an abstraction for time operations to enable testing.
//
// This interface allows for dependency injection of time functions,
// making it easy to test time-dependent behavior with fake clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// After delegates to time.After.
func (c *SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Metrics records limiter activity.
//
// Implementations can use Prometheus or discard everything (NoOpMetrics).
type Metrics interface {
	// RecordWait records how long a caller was held before dispatch.
	//
	// Parameters:
	//   - limiter: Name of the limiter (e.g., "jikan")
	//   - waited: Time between entering Wait and being released
	RecordWait(limiter string, waited time.Duration)

	// RecordCancelled records a Wait call that was abandoned because its
	// context ended first.
	RecordCancelled(limiter string)
}
