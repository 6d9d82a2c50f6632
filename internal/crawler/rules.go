package crawler

import (
	"net/url"
	"strings"
)

// Path fragments that indicate non-content pages (commerce flows, auth,
// archives) which are never worth redesigning.
var nonContentFragments = []string{
	"cart",
	"checkout",
	"admin",
	"login",
	"account",
	"search",
	"tag",
	"category",
	"page/",
	"comment",
}

var staticExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".css", ".js", ".pdf", ".zip", ".mp4", ".webm",
	".woff", ".woff2", ".ttf", ".xml", ".json",
}

func isNonContentPath(path string) bool {
	lower := strings.ToLower(path)
	for _, fragment := range nonContentFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func isStaticAsset(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range staticExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// normalizeURL strips fragments, lowercases scheme and host, and removes a
// trailing slash so equivalent URLs dedupe to one key.
func normalizeURL(u *url.URL) string {
	clone := *u
	clone.Fragment = ""
	clone.Scheme = strings.ToLower(clone.Scheme)
	clone.Host = strings.ToLower(clone.Host)
	if clone.Path != "/" {
		clone.Path = strings.TrimSuffix(clone.Path, "/")
	}
	return clone.String()
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// pathDepth counts non-empty path segments: "/" is 0, "/about" is 1,
// "/shop/roses" is 2.
func pathDepth(path string) int {
	return len(pathSegments(path))
}

// parentSegment returns the first path segment, the depth-1 parent under
// which deeper pages live.
func parentSegment(path string) string {
	segments := pathSegments(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}
