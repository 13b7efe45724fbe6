// Package render — Markdown renderer.
// Lays the post out as an HTML card and normalizes it to Markdown.
package render

import (
	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/normalize"
)

// MarkdownRenderer writes a post as a Markdown document.
type MarkdownRenderer struct {
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render returns the post card as Markdown bytes.
func (r *MarkdownRenderer) Render(result core.ExtractionResult, meta core.PostMetadata) ([]byte, error) {
	markdown, err := toMarkdown(r.normalizer, result, meta)
	if err != nil {
		return nil, err
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func toMarkdown(n core.Normalizer, result core.ExtractionResult, meta core.PostMetadata) (string, error) {
	card, err := renderCard(result, meta)
	if err != nil {
		return "", err
	}
	return n.Normalize(card)
}
