package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns covers both the public API routes and the upstream catalog
// endpoints, so one normalizer serves HTTP metrics and upstream metrics.
var pathPatterns = []*PathPattern{
	// Public API
	{Pattern: regexp.MustCompile(`^/api/anime/\d+$`), Template: "/api/anime/:id"},
	{Pattern: regexp.MustCompile(`^/api/favorites/\d+$`), Template: "/api/favorites/:id"},

	// Upstream catalog
	{Pattern: regexp.MustCompile(`^/anime/\d+/full$`), Template: "/anime/:id/full"},
	{Pattern: regexp.MustCompile(`^/anime/\d+/news$`), Template: "/anime/:id/news"},
}

// NormalizePath converts paths carrying numeric ids to their route template
// so that metric labels stay bounded. Static paths pass through unchanged.
//
//	NormalizePath("/api/anime/5114")     // "/api/anime/:id"
//	NormalizePath("/api/anime/trending") // "/api/anime/trending"
//	NormalizePath("/anime/21/full")      // "/anime/:id/full"
//	NormalizePath("/api/anime/1/")       // "/api/anime/:id"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
