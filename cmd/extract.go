// Package cmd — extract command.
// Runs the pipeline from the command line and writes the result to a file:
// fetch → extract → assemble → render → write.
//
// It handles flag validation, renderer selection, and single/--all modes.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/extract"
	"github.com/gaurav-prasanna/reelpipe/core/fetch"
	"github.com/gaurav-prasanna/reelpipe/core/output"
	"github.com/gaurav-prasanna/reelpipe/core/pipeline"
	"github.com/gaurav-prasanna/reelpipe/core/render"
	"github.com/gaurav-prasanna/reelpipe/crawl"
)

// Flag variables.
var (
	flagAll       bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract a post and write it as JSON, Markdown or PDF",
	Long: `Extract fetches a reel or post page, recovers its video URL, caption,
author and hashtags, and writes them in the chosen format.

With --all the URL is treated as a listing (a profile, a hashtag page or a
post) and every linked post is extracted.

Examples:
  reelpipe extract https://www.instagram.com/reel/C1a2B3/ --json
  reelpipe extract https://www.instagram.com/reel/C1a2B3/ --pdf --output_dir ./out
  reelpipe extract https://www.instagram.com/natgeo/ --all --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&flagAll, "all", false, "Extract every post linked from the page")

	// Output format flags (mutually exclusive).
	extractCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	extractCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	extractCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	extractCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	if err := validateFlags(flagJSON, flagMarkdown, flagPDF); err != nil {
		return err
	}
	if err := validateURL(rawURL); err != nil {
		return err
	}

	renderer, err := selectRenderer(flagJSON, flagMarkdown, flagPDF)
	if err != nil {
		return err
	}

	fetcher, err := fetch.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initializing fetcher: %w", err)
	}
	p := pipeline.New(fetcher, extract.New())

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := logger.WithContext(cmd.Context())

	if flagAll {
		return runAll(ctx, rawURL, fetcher, p, renderer, writer)
	}
	return runOnly(ctx, rawURL, p, renderer, writer)
}

// runOnly processes a single post URL.
func runOnly(ctx context.Context, rawURL string, p *pipeline.Pipeline, renderer core.Renderer, writer *output.Writer) error {
	data, err := processURL(ctx, rawURL, p, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteOnly(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers the posts linked from rawURL and processes each one.
// Failed posts are reported and skipped.
func runAll(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	p *pipeline.Pipeline,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering posts from %s...\n", rawURL)

	urls, err := crawl.DiscoverPosts(ctx, rawURL, fetcher)
	if err != nil {
		return fmt.Errorf("discovering posts: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no post links found on %s", rawURL)
	}

	fmt.Fprintf(os.Stdout, "Found %d posts to process\n", len(urls))

	var errCount int
	for i, postURL := range urls {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(urls), postURL)

		data, err := processURL(ctx, postURL, p, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteAll(postURL, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d posts failed\n", errCount, len(urls))
	}
	if errCount == len(urls) {
		return errors.New("every post failed")
	}
	return nil
}

// processURL runs one URL through the pipeline and renders the result.
func processURL(ctx context.Context, rawURL string, p *pipeline.Pipeline, renderer core.Renderer) ([]byte, error) {
	result, err := p.Run(ctx, rawURL)
	if errors.Is(err, core.ErrVideoNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	data, err := renderer.Render(result, buildMetadata(rawURL, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// buildMetadata describes where and when rawURL was fetched.
func buildMetadata(rawURL string, fetchedAt time.Time) core.PostMetadata {
	meta := core.PostMetadata{
		URL:       rawURL,
		FetchedAt: fetchedAt.UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}
	return meta
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://www.instagram.com/reel/...)", rawURL)
	}
	return nil
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags(formats ...bool) error {
	count := 0
	for _, set := range formats {
		if set {
			count++
		}
	}
	if count == 0 {
		return fmt.Errorf("exactly one output format is required: --json, --markdown, or --pdf")
	}
	if count > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", count)
	}
	return nil
}

// selectRenderer creates the Renderer for the chosen format.
func selectRenderer(asJSON, asMarkdown, asPDF bool) (core.Renderer, error) {
	switch {
	case asJSON:
		return render.NewJSONRenderer(), nil
	case asMarkdown:
		return render.NewMarkdownRenderer(), nil
	case asPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
