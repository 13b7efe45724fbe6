// Package crawl — post URL rules.
// Decides which links point at a single post and normalizes them for
// deduplication.
package crawl

import (
	"net/url"
	"strings"

	"github.com/tidwall/match"
)

// postPatterns match "<host><path>" with the www./m. prefix removed.
// "?*" requires a non-empty shortcode segment.
var postPatterns = []string{
	"instagram.com/reel/?*",
	"instagram.com/reels/?*",
	"instagram.com/p/?*",
	"instagram.com/tv/?*",
}

// IsPostURL reports whether rawURL points at a single reel, post or IGTV video.
func IsPostURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	target := host + parsed.Path
	for _, pattern := range postPatterns {
		if match.Match(target, pattern) {
			return true
		}
	}
	return false
}

// NormalizeURL strips query, fragment and trailing slash so share links with
// tracking parameters collapse onto one post.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	parsed.RawQuery = ""
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
