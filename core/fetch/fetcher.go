// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests that look like a desktop browser so the
// upstream serves its full server-rendered HTML.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gaurav-prasanna/reelpipe/config"
	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/tr"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 10 << 20
)

var tracer = otel.Tracer("fetch")

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	proxy        string
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

// New creates an HTTPFetcher with a browser user agent and a sensible timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: defaultTransport(),
		},
		userAgent:    config.DefaultUserAgent,
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// FromConfig creates an HTTPFetcher configured from cfg.
func FromConfig(cfg config.Config) (*HTTPFetcher, error) {
	f := New().
		WithUserAgent(cfg.UserAgent).
		WithTimeout(cfg.FetchTimeout).
		WithMaxBodyBytes(cfg.MaxBodyBytes)
	if err := f.SetProxy(cfg.FetchProxy); err != nil {
		return nil, err
	}
	return f, nil
}

// WithUserAgent overrides the User-Agent header. Empty keeps the current one.
func (f *HTTPFetcher) WithUserAgent(ua string) *HTTPFetcher {
	if ua != "" {
		f.userAgent = ua
	}
	return f
}

// WithTimeout sets the whole-request timeout. Zero disables it.
func (f *HTTPFetcher) WithTimeout(d time.Duration) *HTTPFetcher {
	f.client.Timeout = d
	return f
}

// WithMaxBodyBytes caps how much of the response body is read.
func (f *HTTPFetcher) WithMaxBodyBytes(n int64) *HTTPFetcher {
	if n > 0 {
		f.maxBodyBytes = n
	}
	return f
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (_ *core.FetchResult, err error) {
	ctx, span := tracer.Start(ctx, "fetch")
	defer tr.End(span, &err)
	span.SetAttributes(attribute.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d for %s", core.ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("fetched page")

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
