package ratelimit

import "time"

// NoOpMetrics implements the Metrics interface with no-op implementations.
//
// This implementation is useful for tests and for limiters whose activity
// is not worth exporting.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics instance.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordWait is a no-op implementation.
func (m *NoOpMetrics) RecordWait(limiter string, waited time.Duration) {
	// No-op
}

// RecordCancelled is a no-op implementation.
func (m *NoOpMetrics) RecordCancelled(limiter string) {
	// No-op
}
