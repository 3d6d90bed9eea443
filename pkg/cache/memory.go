package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the freshness window applied when NewMemory receives a
// non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Lookup results reported to Metrics.
const (
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultExpired = "expired"
)

// Clock returns the current time. It is injected so tests can age entries
// without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Metrics receives one call per Get.
type Metrics interface {
	RecordLookup(result string)
}

type noopMetrics struct{}

func (noopMetrics) RecordLookup(string) {}

type entry struct {
	value      any
	insertedAt time.Time
}

// Memory is a goroutine-safe map of key to (value, insertedAt).
type Memory struct {
	ttl     time.Duration
	clock   Clock
	metrics Metrics

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(m *Memory) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithMetrics sets the lookup recorder.
func WithMetrics(r Metrics) Option {
	return func(m *Memory) {
		if r != nil {
			m.metrics = r
		}
	}
}

// NewMemory creates an empty cache whose entries stay fresh for ttl.
func NewMemory(ttl time.Duration, opts ...Option) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Memory{
		ttl:     ttl,
		clock:   systemClock{},
		metrics: noopMetrics{},
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the freshness window.
func (m *Memory) TTL() time.Duration { return m.ttl }

// Get returns the value stored under key. It reports false when the key is
// missing or when now - insertedAt >= TTL.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.metrics.RecordLookup(ResultMiss)
		return nil, false
	}
	if m.clock.Now().Sub(e.insertedAt) >= m.ttl {
		m.metrics.RecordLookup(ResultExpired)
		return nil, false
	}
	m.metrics.RecordLookup(ResultHit)
	return e.value, true
}

// Set stores value under key with the current time, replacing any previous
// entry.
func (m *Memory) Set(key string, value any) {
	now := m.clock.Now()
	m.mu.Lock()
	m.entries[key] = entry{value: value, insertedAt: now}
	m.mu.Unlock()
}

// Delete removes key if present.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the number of stored entries, stale ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
