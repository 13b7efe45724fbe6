// Package crawl discovers post URLs for --all mode.
// It reads the links of a single page (a profile, a hashtag page or a post)
// and keeps those pointing at individual posts, leaving extraction to the
// pipeline.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/reelpipe/core"
)

// DiscoverPosts fetches pageURL and returns the distinct post URLs it links
// to, in document order. When pageURL is itself a post it comes first.
func DiscoverPosts(ctx context.Context, pageURL string, fetcher core.Fetcher) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	queue := NewQueue()
	if IsPostURL(pageURL) {
		queue.Add(NormalizeURL(pageURL))
	}

	result, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}

	links, err := extractLinks(result.HTML, base)
	if err != nil {
		return nil, fmt.Errorf("reading links: %w", err)
	}

	for _, link := range links {
		if IsPostURL(link) {
			queue.Add(NormalizeURL(link))
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("page", pageURL).
		Int("links", len(links)).
		Int("posts", queue.Len()).
		Msg("discovered post links")
	return queue.All(), nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

// resolveURL resolves a potentially relative URL against base.
// Non-navigational schemes and bare fragments yield "".
func resolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	for _, scheme := range []string{"mailto:", "javascript:", "tel:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return ""
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
