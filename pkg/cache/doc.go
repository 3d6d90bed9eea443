// Package cache provides an in-process TTL cache for upstream responses.
//
// Entries are kept in a mutex-guarded map together with their insertion
// time. Expiry is lazy: an entry older than the TTL is reported as absent by
// Get and is overwritten by the next Set for the same key. There is no
// background eviction goroutine.
//
// Cached wraps the get-or-fill pattern and coalesces concurrent fills for the
// same key into a single call:
//
//	c := cache.NewMemory(5 * time.Minute)
//	items, err := cache.Cached(ctx, c, "trending", func(ctx context.Context) ([]entity.AnimeSummary, error) {
//	    return upstream.Trending(ctx)
//	})
package cache
