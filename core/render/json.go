// Package render — JSON renderer.
// Writes the extraction result together with its fetch metadata, in the
// same field names the API uses.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/reelpipe/core"
)

// PostJSON is the complete JSON output for a single post.
type PostJSON struct {
	Metadata core.PostMetadata     `json:"metadata"`
	Post     core.ExtractionResult `json:"post"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render serializes result and meta as indented JSON.
func (r *JSONRenderer) Render(result core.ExtractionResult, meta core.PostMetadata) ([]byte, error) {
	if result.Hashtags == nil {
		result.Hashtags = []string{}
	}
	data, err := json.MarshalIndent(PostJSON{Metadata: meta, Post: result}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
