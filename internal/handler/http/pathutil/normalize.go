// Package pathutil maps request paths to bounded metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// UnmatchedPath is the label for any path that is not a known route.
const UnmatchedPath = "/other"

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// staticPaths are the routes served by the API.
var staticPaths = map[string]struct{}{
	"/api/summarize":      {},
	"/api/validate-video": {},
	"/api/summaries":      {},
	"/health":             {},
	"/ready":              {},
	"/live":               {},
	"/metrics":            {},
}

// pathPatterns collapse route families with arbitrary suffixes.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/swagger(/.*)?$`), Template: "/swagger/*"},
}

// NormalizePath normalizes URL paths to prevent metrics label cardinality explosion.
// Known routes pass through, route families map to their template and anything
// else (scanners, typos) collapses into UnmatchedPath.
//
// Examples:
//
//	NormalizePath("/api/summarize")          // "/api/summarize"
//	NormalizePath("/api/summaries?limit=5")  // "/api/summaries"
//	NormalizePath("/swagger/index.html")     // "/swagger/*"
//	NormalizePath("/wp-login.php")           // "/other"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' && !strings.HasPrefix(path, "/swagger") {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return UnmatchedPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
