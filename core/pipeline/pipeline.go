// Package pipeline wires the fetch, extract and assemble stages together.
// The HTTP handler and the CLI both go through Run.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/render"
	"github.com/gaurav-prasanna/reelpipe/tr"
)

var tracer = otel.Tracer("pipeline")

// Pipeline extracts a post from a single page URL.
type Pipeline struct {
	Fetcher   core.Fetcher
	Extractor core.Extractor
}

// New creates a Pipeline from its stages.
func New(fetcher core.Fetcher, extractor core.Extractor) *Pipeline {
	return &Pipeline{Fetcher: fetcher, Extractor: extractor}
}

// Run fetches url and returns the assembled result.
// It returns core.ErrVideoNotFound when the page has no recoverable video;
// any other error is a fetch or parse failure.
func (p *Pipeline) Run(ctx context.Context, url string) (_ core.ExtractionResult, err error) {
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer tr.End(span, &err)
	span.SetAttributes(attribute.String("url", url))

	page, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return core.ExtractionResult{}, err
	}

	post, err := p.Extractor.Extract(ctx, page.HTML)
	if err != nil {
		return core.ExtractionResult{}, err
	}

	result, err := render.Assemble(post)
	if err != nil {
		zerolog.Ctx(ctx).Info().Str("url", url).Msg("no video found on page")
		return core.ExtractionResult{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("url", url).
		Str("username", result.Username).
		Int("hashtags", len(result.Hashtags)).
		Msg("post extracted")
	return result, nil
}
