// Package normalize turns the HTML post card into Markdown.
// The dialect is pinned (ATX headings, "-" bullets, "*" emphasis) because the
// PDF renderer reads the Markdown back line by line.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// MarkdownNormalizer converts HTML to Markdown. Safe for concurrent use.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
					commonmark.WithBulletListMarker("-"),
					commonmark.WithEmDelimiter("*"),
					commonmark.WithStrongDelimiter("**"),
				),
			),
		),
	}
}

// Normalize converts an HTML fragment into Markdown with at most one blank
// line between blocks and no surrounding whitespace.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = blankRuns.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}
