package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrozenLimiter(rps float64, burst int, idle time.Duration) (*IPRateLimiter, *time.Time) {
	l := NewIPRateLimiter(rps, burst, idle, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.lastSweep = now
	return l, &now
}

func TestIPRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	l, _ := newFrozenLimiter(1, 3, time.Hour)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("203.0.113.1")
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, retry := l.Allow("203.0.113.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, retry)
}

func TestIPRateLimiter_RefillsOverTime(t *testing.T) {
	l, now := newFrozenLimiter(2, 1, time.Hour)

	ok, _ := l.Allow("a")
	require.True(t, ok)
	ok, _ = l.Allow("a")
	require.False(t, ok)

	*now = now.Add(500 * time.Millisecond)
	ok, _ = l.Allow("a")
	assert.True(t, ok)
}

func TestIPRateLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newFrozenLimiter(1, 1, time.Hour)

	ok, _ := l.Allow("a")
	require.True(t, ok)
	ok, _ = l.Allow("b")
	assert.True(t, ok)
}

func TestIPRateLimiter_SweepsIdleClients(t *testing.T) {
	l, now := newFrozenLimiter(1, 1, time.Minute)

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Len())

	*now = now.Add(2 * time.Minute)
	l.Allow("c")
	assert.Equal(t, 1, l.Len())
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l, _ := newFrozenLimiter(1, 1, time.Hour)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/anime/trending", nil)
	req.RemoteAddr = "203.0.113.9:5555"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestIPRateLimiter_UnparseableAddressPassesThrough(t *testing.T) {
	l, _ := newFrozenLimiter(1, 0, time.Hour)
	called := false
	h := l.Middleware(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "???"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}
