// Package jikan is the upstream catalog adapter. Client performs rate
// limited, retried and circuit-protected GET requests against the Jikan v4
// API; Catalog maps the responses to domain records.
package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aniexo/internal/config"
	"aniexo/internal/handler/http/pathutil"
	"aniexo/internal/observability/metrics"
	"aniexo/internal/observability/tracing"
	"aniexo/internal/resilience/circuitbreaker"
	"aniexo/internal/resilience/retry"
	catUC "aniexo/internal/usecase/catalog"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxBodySize = 5 * 1024 * 1024 // 5MB
)

// Waiter is the outbound limiter shared by every upstream call.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Client talks to the Jikan API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    Waiter
	breaker    *circuitbreaker.CircuitBreaker
	policy     *retry.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Client. limiter is waited on before the first attempt
// and again before every retry.
func NewClient(cfg *config.UpstreamConfig, limiter Waiter, opts ...Option) *Client {
	cbCfg := circuitbreaker.JikanAPIConfig()
	cbCfg.MaxRequests = cfg.CircuitBreaker.MaxRequests
	cbCfg.Interval = cfg.CircuitBreaker.Interval
	cbCfg.Timeout = cfg.CircuitBreaker.Timeout
	cbCfg.FailureThreshold = cfg.CircuitBreaker.FailureThreshold
	cbCfg.MinRequests = cfg.CircuitBreaker.MinRequests
	cbCfg.IsSuccessful = countsAsSuccess
	cbCfg.OnStateChange = func(name string, _, to gobreaker.State) {
		metrics.RecordCircuitState(name, to)
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    limiter,
		breaker:    circuitbreaker.New(cbCfg),
		policy: retry.New(retry.Config{
			MaxAttempts:  cfg.Retry.MaxAttempts,
			BaseInterval: cfg.Retry.BaseInterval,
		}, limiter),
	}
	for _, opt := range opts {
		opt(c)
	}
	metrics.RecordCircuitState(c.breaker.Name(), c.breaker.State())
	return c
}

// Breaker exposes the circuit breaker for readiness checks.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// Fetch performs GET baseURL+path?query and returns the JSON body.
// Failures are *UpstreamError values whose Kind is one of the
// catalog.ErrUpstream* sentinels.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := pathutil.NormalizePath(path)
	start := time.Now()

	ctx, span := tracing.StartClientSpan(ctx, "jikan GET "+endpoint,
		attribute.String("upstream.endpoint", endpoint),
	)
	body, err := c.fetch(ctx, endpoint, path, query)
	tracing.EndSpan(span, err)

	metrics.RecordUpstreamRequest(endpoint, outcome(err), time.Since(start))
	return body, err
}

func (c *Client) fetch(ctx context.Context, endpoint, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	// The limiter is entered inside the breaker so an open circuit
	// rejects without taking a dispatch slot.
	var body []byte
	_, err := c.breaker.Execute(func() (interface{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", errAdmission, err)
		}
		return nil, c.policy.Execute(ctx, func(ctx context.Context) error {
			b, err := c.get(ctx, target)
			if err != nil {
				return err
			}
			body = b
			return nil
		})
	})
	if err != nil {
		return nil, c.classify(endpoint, err)
	}

	if !json.Valid(body) {
		return nil, &UpstreamError{
			Kind:     catUC.ErrUpstreamParse,
			Endpoint: endpoint,
			Err:      errors.New("response body is not valid JSON"),
		}
	}
	return body, nil
}

// get performs a single round trip without retry or circuit breaker.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) classify(endpoint string, err error) error {
	if circuitbreaker.IsRejection(err) {
		slog.Warn("jikan circuit breaker open, request rejected",
			slog.String("service", c.breaker.Name()),
			slog.String("endpoint", endpoint),
			slog.String("state", c.breaker.State().String()))
		return &UpstreamError{
			Kind:     catUC.ErrUpstreamUnavailable,
			Endpoint: endpoint,
			Err:      errors.Join(errRejected, err),
		}
	}

	ue := &UpstreamError{Kind: catUC.ErrUpstreamUnavailable, Endpoint: endpoint, Err: err}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		ue.StatusCode = httpErr.StatusCode
	}
	if errors.Is(err, retry.ErrAttemptsExhausted) {
		ue.Kind = catUC.ErrUpstreamRateLimited
	}
	return ue
}

// countsAsSuccess keeps answers that say nothing about upstream health out
// of the breaker's failure ratio.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, errAdmission) {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusNotFound
	}
	return false
}
