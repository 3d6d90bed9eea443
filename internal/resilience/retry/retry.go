// Package retry provides the upstream retry policy.
// Only rate-limit rejections (HTTP 429) are retried; every other failure is
// returned to the caller on the first attempt.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrAttemptsExhausted is returned when every attempt was rejected with 429.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Config holds the configuration for the retry policy.
type Config struct {
	// MaxAttempts is the total number of calls, including the first one
	MaxAttempts int

	// BaseInterval scales the linear backoff: delay = BaseInterval * 2 * attempt
	BaseInterval time.Duration
}

// DefaultConfig returns the configuration used for Jikan requests.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		BaseInterval: 1500 * time.Millisecond,
	}
}

// Waiter is satisfied by the outbound limiter. A retry re-enters the limiter
// so that it is spaced against every other outbound call.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Policy retries calls rejected with HTTP 429.
type Policy struct {
	cfg     Config
	limiter Waiter

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Policy. limiter may be nil, in which case retries are only
// delayed by the backoff.
func New(cfg Config, limiter Waiter) *Policy {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Policy{
		cfg:     cfg,
		limiter: limiter,
		sleep:   sleepContext,
	}
}

// Backoff returns the delay before retry number attempt (1-based).
func (p *Policy) Backoff(attempt int) time.Duration {
	return p.cfg.BaseInterval * 2 * time.Duration(attempt)
}

// MaxAttempts returns the configured attempt limit.
func (p *Policy) MaxAttempts() int {
	return p.cfg.MaxAttempts
}

// Execute calls fn until it succeeds, fails with a non-429 error, or the
// attempt limit is reached. Exhaustion is reported as ErrAttemptsExhausted
// wrapping the last *HTTPError.
func (p *Policy) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				slog.Info("upstream call succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRateLimited(err) {
			return err
		}

		if attempt >= p.cfg.MaxAttempts {
			slog.Warn("upstream still rate limited, giving up",
				slog.Int("attempts", attempt))
			return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt, err)
		}

		delay := p.Backoff(attempt)
		slog.Warn("upstream rate limited, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.cfg.MaxAttempts),
			slog.Duration("delay", delay))

		if err := p.sleep(ctx, delay); err != nil {
			return fmt.Errorf("retry aborted: %w", err)
		}
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("retry aborted: %w", err)
			}
		}
	}
}

// IsRateLimited reports whether err carries an HTTP 429 status.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
