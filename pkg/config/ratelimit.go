package config

import (
	"log/slog"
	"time"
)

// InboundRateLimitConfig configures the per-client token bucket applied to
// incoming API requests.
type InboundRateLimitConfig struct {
	Enabled bool

	// RequestsPerSecond is the sustained refill rate per client.
	RequestsPerSecond float64

	// Burst is the bucket size per client.
	Burst int

	// IdleTTL is how long an idle client's bucket is kept before it is dropped.
	IdleTTL time.Duration

	// TrustedProxies lists CIDRs whose X-Forwarded-For header is honoured.
	TrustedProxies []string
}

// LoadInboundRateLimitConfig loads inbound rate limiting configuration from
// environment variables.
//
// If any values are invalid, it logs warnings and uses safe defaults instead
// of failing.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_RPS: Sustained requests per second per client (default: 5)
//   - RATELIMIT_BURST: Bucket size per client (default: 20)
//   - RATELIMIT_IDLE_TTL: Idle bucket lifetime (default: 10m)
//   - TRUSTED_PROXIES: Comma-separated CIDRs (default: none)
func LoadInboundRateLimitConfig() InboundRateLimitConfig {
	config := InboundRateLimitConfig{
		Enabled:        GetEnvBool("RATELIMIT_ENABLED", true),
		TrustedProxies: GetEnvStringList("TRUSTED_PROXIES", nil),
	}

	rps := GetEnvFloat("RATELIMIT_RPS", 5)
	if rps <= 0 {
		slog.Warn("invalid RATELIMIT_RPS, using default",
			slog.Float64("value", rps),
			slog.Float64("default", 5))
		rps = 5
	}
	config.RequestsPerSecond = rps

	burst := GetEnvInt("RATELIMIT_BURST", 20)
	if burst <= 0 {
		slog.Warn("invalid RATELIMIT_BURST, using default",
			slog.Int("value", burst),
			slog.Int("default", 20))
		burst = 20
	}
	config.Burst = burst

	idleTTL := GetEnvDuration("RATELIMIT_IDLE_TTL", 10*time.Minute)
	if err := ValidatePositiveDuration(idleTTL); err != nil {
		slog.Warn("invalid RATELIMIT_IDLE_TTL, using default",
			slog.String("value", idleTTL.String()),
			slog.String("default", "10m"),
			slog.String("error", err.Error()))
		idleTTL = 10 * time.Minute
	}
	config.IdleTTL = idleTTL

	return config
}
