// Package config holds application-level configuration: the upstream
// catalog client settings and the mood policy table.
package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "aniexo/pkg/config"
)

// UpstreamConfig holds configuration for the Jikan catalog client.
type UpstreamConfig struct {
	// BaseURL is the API root without a trailing slash.
	// Default: "https://api.jikan.moe/v4"
	BaseURL string

	// MinInterval is the minimum spacing between outbound requests.
	// Default: 1.5s
	MinInterval time.Duration

	// RequestTimeout bounds a single HTTP round trip.
	// Default: 15s
	RequestTimeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string

	// Retry configures the 429 retry policy.
	Retry RetryConfig

	// CircuitBreaker for upstream calls.
	CircuitBreaker CircuitBreakerConfig

	// CacheTTL is how long a cached view stays fresh.
	// Default: 300s
	CacheTTL time.Duration

	// NewsReferenceID is the title whose news feed backs /api/anime/news.
	// Default: 1
	NewsReferenceID int64
}

// RetryConfig holds the 429 retry settings.
type RetryConfig struct {
	// MaxAttempts including the first call. Default: 3
	MaxAttempts int
	// BaseInterval scales the linear backoff. Default: 1.5s
	BaseInterval time.Duration
}

// CircuitBreakerConfig for upstream resilience.
type CircuitBreakerConfig struct {
	// MaxRequests in half-open state.
	MaxRequests uint32

	// Interval for clearing failure counts.
	Interval time.Duration

	// Timeout before transitioning from open to half-open.
	Timeout time.Duration

	// FailureThreshold ratio to trip circuit (0.0 to 1.0).
	FailureThreshold float64

	// MinRequests before calculating failure ratio.
	MinRequests uint32
}

// LoadUpstreamConfig loads upstream configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadUpstreamConfig() (*UpstreamConfig, error) {
	config := &UpstreamConfig{
		BaseURL:        pkgconfig.GetEnvString("JIKAN_BASE_URL", "https://api.jikan.moe/v4"),
		MinInterval:    pkgconfig.GetEnvDuration("JIKAN_MIN_INTERVAL", 1500*time.Millisecond),
		RequestTimeout: pkgconfig.GetEnvDuration("JIKAN_REQUEST_TIMEOUT", 15*time.Second),
		UserAgent:      pkgconfig.GetEnvString("JIKAN_USER_AGENT", "aniexo/1.0 (+https://github.com/aniexo)"),
		Retry: RetryConfig{
			MaxAttempts:  pkgconfig.GetEnvInt("JIKAN_RETRY_MAX_ATTEMPTS", 3),
			BaseInterval: pkgconfig.GetEnvDuration("JIKAN_RETRY_BASE_INTERVAL", 1500*time.Millisecond),
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      uint32(pkgconfig.GetEnvInt("JIKAN_CB_MAX_REQUESTS", 1)),
			Interval:         pkgconfig.GetEnvDuration("JIKAN_CB_INTERVAL", 60*time.Second),
			Timeout:          pkgconfig.GetEnvDuration("JIKAN_CB_TIMEOUT", 30*time.Second),
			FailureThreshold: 0.6,
			MinRequests:      5,
		},
		CacheTTL:        pkgconfig.GetEnvDuration("CACHE_TTL", 300*time.Second),
		NewsReferenceID: int64(pkgconfig.GetEnvInt("JIKAN_NEWS_REFERENCE_ID", 1)),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upstream configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *UpstreamConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("JIKAN_BASE_URL must be an absolute http(s) URL")
	}

	if err := pkgconfig.ValidatePositiveDuration(c.MinInterval); err != nil {
		return fmt.Errorf("JIKAN_MIN_INTERVAL: %w", err)
	}

	if err := pkgconfig.ValidatePositiveDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("JIKAN_REQUEST_TIMEOUT: %w", err)
	}

	if c.Retry.MaxAttempts < 1 || c.Retry.MaxAttempts > 10 {
		return fmt.Errorf("JIKAN_RETRY_MAX_ATTEMPTS must be between 1 and 10")
	}

	if err := pkgconfig.ValidateNonNegativeDuration(c.Retry.BaseInterval); err != nil {
		return fmt.Errorf("JIKAN_RETRY_BASE_INTERVAL: %w", err)
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("JIKAN_CB_MAX_REQUESTS must be positive")
	}

	if c.CircuitBreaker.Interval <= 0 {
		return fmt.Errorf("JIKAN_CB_INTERVAL must be positive")
	}

	if c.CircuitBreaker.Timeout <= 0 {
		return fmt.Errorf("JIKAN_CB_TIMEOUT must be positive")
	}

	if err := pkgconfig.ValidatePositiveDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("CACHE_TTL: %w", err)
	}

	if c.NewsReferenceID <= 0 {
		return fmt.Errorf("JIKAN_NEWS_REFERENCE_ID must be positive")
	}

	return nil
}
