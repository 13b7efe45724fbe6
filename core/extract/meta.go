package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors are tried in order; the first non-empty content attribute wins.
var (
	videoSelectors   = []string{`meta[property="og:video"]`, `meta[name="og:video"]`}
	captionSelectors = []string{`meta[property="og:description"]`, `meta[name="description"]`}
	titleSelectors   = []string{`meta[property="og:title"]`}
)

// titleSeparator splits "username • Instagram ..." style og:title values.
const titleSeparator = "•"

// fromMeta reads the first-pass post fields from Open Graph meta tags.
func fromMeta(doc *goquery.Document) (videoURL, caption, username string) {
	videoURL = firstContent(doc, videoSelectors...)
	caption = firstContent(doc, captionSelectors...)

	if title := firstContent(doc, titleSelectors...); title != "" {
		head, _, _ := strings.Cut(title, titleSeparator)
		username = strings.TrimSpace(head)
	}
	return videoURL, caption, username
}

// firstContent returns the content attribute of the first element matched by
// the first selector that yields a non-empty value.
func firstContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return content
		}
	}
	return ""
}
