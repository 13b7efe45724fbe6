// Package render turns extracted posts into response payloads and output files.
// This file implements the response assembler shared by the API and the CLI.
package render

import (
	"github.com/gaurav-prasanna/reelpipe/core"
)

// Assemble builds the success payload for post, or returns
// core.ErrVideoNotFound when no video URL was recovered.
func Assemble(post core.Post) (core.ExtractionResult, error) {
	if post.VideoURL == "" {
		return core.ExtractionResult{}, core.ErrVideoNotFound
	}

	hashtags := post.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}

	return core.ExtractionResult{
		VideoURL: post.VideoURL,
		Caption:  post.Caption,
		Hashtags: hashtags,
		Username: post.Username,
	}, nil
}

// ErrorBody is the payload for every unsuccessful outcome.
func ErrorBody(msg string) core.ErrorResult {
	return core.ErrorResult{Error: msg}
}
