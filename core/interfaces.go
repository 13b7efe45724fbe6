// Package core defines the pipeline types and interfaces for reelpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// ExtractionRequest is the body accepted by the extract endpoint.
type ExtractionRequest struct {
	URL string `json:"url"`
}

// Post is the partial result of running the extractors over one page.
// Any field may be empty; absence is not an error at this stage.
type Post struct {
	VideoURL string
	Caption  string
	Username string
	Hashtags []string
}

// ExtractionResult is the successful response payload.
type ExtractionResult struct {
	VideoURL string   `json:"videoUrl"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Username string   `json:"username"`
}

// ErrorResult is the payload for every unsuccessful outcome.
type ErrorResult struct {
	Error string `json:"error"`
}

// PostMetadata describes where and when a post was fetched.
// Used by the file renderers of the CLI.
type PostMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Path      string `json:"path"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls post fields out of raw HTML.
type Extractor interface {
	Extract(ctx context.Context, html string) (Post, error)
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts an extraction result (and metadata) into a final output format.
type Renderer interface {
	Render(result ExtractionResult, meta PostMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
