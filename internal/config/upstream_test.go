package config

import (
	"testing"
	"time"
)

func TestLoadUpstreamConfig_Defaults(t *testing.T) {
	cfg, err := LoadUpstreamConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://api.jikan.moe/v4" {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.MinInterval != 1500*time.Millisecond {
		t.Errorf("expected MinInterval=1.5s, got %v", cfg.MinInterval)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected MaxAttempts=3, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Errorf("expected CacheTTL=300s, got %v", cfg.CacheTTL)
	}
	if cfg.NewsReferenceID != 1 {
		t.Errorf("expected NewsReferenceID=1, got %d", cfg.NewsReferenceID)
	}
}

func TestLoadUpstreamConfig_FromEnv(t *testing.T) {
	t.Setenv("JIKAN_BASE_URL", "http://localhost:9000/v4")
	t.Setenv("JIKAN_MIN_INTERVAL", "500ms")
	t.Setenv("JIKAN_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("JIKAN_NEWS_REFERENCE_ID", "5114")

	cfg, err := LoadUpstreamConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://localhost:9000/v4" {
		t.Errorf("unexpected base URL %q", cfg.BaseURL)
	}
	if cfg.MinInterval != 500*time.Millisecond {
		t.Errorf("expected MinInterval=500ms, got %v", cfg.MinInterval)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("expected MaxAttempts=5, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected CacheTTL=10m, got %v", cfg.CacheTTL)
	}
	if cfg.NewsReferenceID != 5114 {
		t.Errorf("expected NewsReferenceID=5114, got %d", cfg.NewsReferenceID)
	}
}

func TestUpstreamConfig_Validate(t *testing.T) {
	valid := func() *UpstreamConfig {
		return &UpstreamConfig{
			BaseURL:        "https://api.jikan.moe/v4",
			MinInterval:    time.Second,
			RequestTimeout: 10 * time.Second,
			Retry:          RetryConfig{MaxAttempts: 3, BaseInterval: time.Second},
			CircuitBreaker: CircuitBreakerConfig{
				MaxRequests: 1,
				Interval:    time.Minute,
				Timeout:     30 * time.Second,
			},
			CacheTTL:        5 * time.Minute,
			NewsReferenceID: 1,
		}
	}

	tests := []struct {
		name   string
		mutate func(*UpstreamConfig)
	}{
		{"relative base URL", func(c *UpstreamConfig) { c.BaseURL = "/v4" }},
		{"ftp base URL", func(c *UpstreamConfig) { c.BaseURL = "ftp://api.jikan.moe" }},
		{"zero interval", func(c *UpstreamConfig) { c.MinInterval = 0 }},
		{"zero timeout", func(c *UpstreamConfig) { c.RequestTimeout = 0 }},
		{"zero attempts", func(c *UpstreamConfig) { c.Retry.MaxAttempts = 0 }},
		{"negative backoff", func(c *UpstreamConfig) { c.Retry.BaseInterval = -time.Second }},
		{"zero cb requests", func(c *UpstreamConfig) { c.CircuitBreaker.MaxRequests = 0 }},
		{"zero ttl", func(c *UpstreamConfig) { c.CacheTTL = 0 }},
		{"zero news id", func(c *UpstreamConfig) { c.NewsReferenceID = 0 }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
