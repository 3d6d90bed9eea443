package pathutil

import "testing"

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/api/anime/123",
		"/api/anime/trending",
		"/anime/21/full",
		"/api/genres",
		"/health",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}
