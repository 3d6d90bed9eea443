package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the spacing used when a limiter is built with a
// non-positive interval. Jikan allows roughly 60 requests per minute, and
// 1.5s keeps bursts comfortably below the per-second ceiling.
const DefaultInterval = 1500 * time.Millisecond

// IntervalLimiter enforces a minimum spacing between consecutive outbound
// dispatches. Every caller that shares the limiter shares one last-dispatch
// timestamp, so the spacing holds across goroutines.
//
// The read-compare-wait-write sequence runs while holding a one-slot channel
// rather than a sync.Mutex so that callers queued behind the slot can still
// give up when their context ends. Waiters are not served in FIFO order.
type IntervalLimiter struct {
	name     string
	interval time.Duration
	clock    Clock
	metrics  Metrics

	slot chan struct{}

	mu   sync.Mutex // guards last for Last()
	last time.Time
}

// Option configures an IntervalLimiter.
type Option func(*IntervalLimiter)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *IntervalLimiter) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(l *IntervalLimiter) {
		if m != nil {
			l.metrics = m
		}
	}
}

// NewIntervalLimiter creates a limiter that spaces dispatches by interval.
//
// Example:
//
//	limiter := ratelimit.NewIntervalLimiter("jikan", 1500*time.Millisecond)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//	resp, err := http.DefaultClient.Do(req)
func NewIntervalLimiter(name string, interval time.Duration, opts ...Option) *IntervalLimiter {
	if interval <= 0 {
		slog.Warn("non-positive limiter interval, using default",
			slog.String("limiter", name),
			slog.Duration("value", interval),
			slog.Duration("default", DefaultInterval))
		interval = DefaultInterval
	}

	l := &IntervalLimiter{
		name:     name,
		interval: interval,
		clock:    &SystemClock{},
		metrics:  NewNoOpMetrics(),
		slot:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until at least Interval has elapsed since the previous caller
// was released, then records the release time and returns.
//
// The timestamp is taken after the wait completes, which is what makes the
// guarantee start(i+1) - start(i) >= Interval hold. If ctx ends first, Wait
// returns ctx.Err() and the shared timestamp is left untouched.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	entered := l.clock.Now()

	select {
	case l.slot <- struct{}{}:
	case <-ctx.Done():
		l.metrics.RecordCancelled(l.name)
		return ctx.Err()
	}
	defer func() { <-l.slot }()

	l.mu.Lock()
	last := l.last
	l.mu.Unlock()

	if !last.IsZero() {
		if remaining := l.interval - l.clock.Now().Sub(last); remaining > 0 {
			select {
			case <-l.clock.After(remaining):
			case <-ctx.Done():
				l.metrics.RecordCancelled(l.name)
				return ctx.Err()
			}
		}
	}

	now := l.clock.Now()
	l.mu.Lock()
	l.last = now
	l.mu.Unlock()

	l.metrics.RecordWait(l.name, now.Sub(entered))
	return nil
}

// Interval returns the configured minimum spacing.
func (l *IntervalLimiter) Interval() time.Duration {
	return l.interval
}

// Name returns the limiter name used in logs and metrics.
func (l *IntervalLimiter) Name() string {
	return l.name
}

// Last returns the most recent release time, or the zero time if Wait has
// never returned successfully.
func (l *IntervalLimiter) Last() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}
