package cache

import (
	"context"
	"fmt"
)

// FillFunc produces a fresh value for a cache miss.
type FillFunc[T any] func(ctx context.Context) (T, error)

// Cached returns the fresh value stored under key, or calls fill, stores its
// result and returns it. Failed fills are never stored.
//
// Concurrent misses for the same key share one fill. The fill runs with a
// context detached from the caller's cancellation so that one client going
// away does not fail the others waiting on it; the caller itself still
// returns as soon as ctx ends.
func Cached[T any](ctx context.Context, m *Memory, key string, fill FillFunc[T]) (T, error) {
	if v, ok := m.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	return load(ctx, m, key, fill)
}

// Refresh calls fill unconditionally and stores a successful result,
// replacing whatever was cached under key.
func Refresh[T any](ctx context.Context, m *Memory, key string, fill FillFunc[T]) (T, error) {
	return load(ctx, m, key, fill)
}

func load[T any](ctx context.Context, m *Memory, key string, fill FillFunc[T]) (T, error) {
	var zero T

	ch := m.group.DoChan(key, func() (any, error) {
		v, err := fill(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("cache: key %q holds %T", key, res.Val)
		}
		return typed, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
