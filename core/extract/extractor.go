// Package extract implements the Extractor interface.
// It recovers a post's video URL, caption and author from a page by:
//  1. Reading Open Graph meta tags
//  2. Falling back to the inline JSON the page hydrates from, only when no
//     video URL was found in step 1
//
// Hashtags are then taken from whichever caption was found.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/tr"
)

var tracer = otel.Tracer("extract")

// PostExtractor pulls post fields out of raw HTML. It holds no state and is
// safe for concurrent use.
type PostExtractor struct{}

// New creates a PostExtractor.
func New() *PostExtractor {
	return &PostExtractor{}
}

// Extract parses html and returns whatever post fields it could recover.
// Missing fields are left empty; only an unparseable document is an error.
func (e *PostExtractor) Extract(ctx context.Context, html string) (_ core.Post, err error) {
	_, span := tracer.Start(ctx, "extract")
	defer tr.End(span, &err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return core.Post{}, fmt.Errorf("parsing HTML: %w", err)
	}

	var post core.Post
	post.VideoURL, post.Caption, post.Username = fromMeta(doc)
	source := "meta"

	if post.VideoURL == "" {
		source = "none"
		embedded, skipped, ok := fromScripts(doc)
		if skipped > 0 {
			zerolog.Ctx(ctx).Debug().Int("skipped", skipped).Msg("ignored inline scripts with malformed JSON")
		}
		if ok {
			source = "embedded_json"
			post.VideoURL = embedded.VideoURL
			if post.Caption == "" {
				post.Caption = embedded.Caption
			}
			if post.Username == "" {
				post.Username = embedded.Username
			}
		}
	}

	post.Hashtags = Hashtags(post.Caption)

	span.SetAttributes(
		attribute.String("source", source),
		attribute.Bool("video_found", post.VideoURL != ""),
		attribute.Int("hashtags", len(post.Hashtags)),
	)

	return post, nil
}
