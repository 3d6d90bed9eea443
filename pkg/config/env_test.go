package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_FLOAT", "2.5")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_LIST", " a, b ,,c ")

	assert.Equal(t, "value", GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("TEST_UNSET", "default"))
	assert.Equal(t, 42, GetEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TEST_BAD_INT", 1))
	assert.Equal(t, 2.5, GetEnvFloat("TEST_FLOAT", 1))
	assert.False(t, GetEnvBool("TEST_BOOL", true))
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", nil))
}

func TestLoadInboundRateLimitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadInboundRateLimitConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 5.0, cfg.RequestsPerSecond)
		assert.Equal(t, 20, cfg.Burst)
		assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
		assert.Empty(t, cfg.TrustedProxies)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("RATELIMIT_RPS", "-1")
		t.Setenv("RATELIMIT_BURST", "0")
		t.Setenv("RATELIMIT_IDLE_TTL", "-5m")

		cfg := LoadInboundRateLimitConfig()
		assert.Equal(t, 5.0, cfg.RequestsPerSecond)
		assert.Equal(t, 20, cfg.Burst)
		assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_ENABLED", "false")
		t.Setenv("RATELIMIT_RPS", "0.5")
		t.Setenv("RATELIMIT_BURST", "3")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

		cfg := LoadInboundRateLimitConfig()
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 0.5, cfg.RequestsPerSecond)
		assert.Equal(t, 3, cfg.Burst)
		assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
	})
}
