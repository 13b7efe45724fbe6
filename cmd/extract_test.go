package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/extract"
	"github.com/gaurav-prasanna/reelpipe/core/fetch"
	"github.com/gaurav-prasanna/reelpipe/core/pipeline"
	"github.com/gaurav-prasanna/reelpipe/core/render"
)

func TestValidateFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		formats []bool
		wantErr bool
	}{
		{"none", []bool{false, false, false}, true},
		{"json", []bool{true, false, false}, false},
		{"pdf", []bool{false, false, true}, false},
		{"two", []bool{true, true, false}, true},
		{"all", []bool{true, true, true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateFlags(tt.formats...)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFlags(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestSelectRenderer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		asJSON, asMarkdown, asPDF bool
		wantExt                   string
	}{
		{true, false, false, ".json"},
		{false, true, false, ".md"},
		{false, false, true, ".pdf"},
	}
	for _, tt := range tests {
		r, err := selectRenderer(tt.asJSON, tt.asMarkdown, tt.asPDF)
		if err != nil {
			t.Fatalf("selectRenderer: %v", err)
		}
		if r.Extension() != tt.wantExt {
			t.Errorf("expected %s renderer, got %s", tt.wantExt, r.Extension())
		}
	}
	if _, err := selectRenderer(false, false, false); err == nil {
		t.Error("expected error when no format is selected")
	}
}

func TestValidateURL(t *testing.T) {
	t.Parallel()
	if err := validateURL("https://www.instagram.com/reel/ABC/"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"www.instagram.com/reel/ABC/", "", "https://"} {
		if err := validateURL(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestBuildMetadata(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 10, 17, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	meta := buildMetadata("https://www.instagram.com/reel/ABC/", at)

	want := core.PostMetadata{
		URL:       "https://www.instagram.com/reel/ABC/",
		Domain:    "www.instagram.com",
		Path:      "/reel/ABC/",
		FetchedAt: "2026-10-17T07:30:00Z",
	}
	if meta != want {
		t.Errorf("expected %+v, got %+v", want, meta)
	}
}

func TestProcessURL(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reel/OK/":
			_, _ = w.Write([]byte(`<html><head>
				<meta property="og:video" content="https://cdn.example.com/ok.mp4">
				<meta property="og:description" content="hello #cli">
				<meta property="og:title" content="tester • Instagram">
			</head></html>`))
		default:
			_, _ = w.Write([]byte(`<html><head><title>Login</title></head></html>`))
		}
	}))
	t.Cleanup(srv.Close)

	p := pipeline.New(fetch.New(), extract.New())

	data, err := processURL(context.Background(), srv.URL+"/reel/OK/", p, render.NewJSONRenderer())
	if err != nil {
		t.Fatalf("processURL: %v", err)
	}
	var doc render.PostJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Post.VideoURL != "https://cdn.example.com/ok.mp4" || doc.Post.Username != "tester" {
		t.Errorf("unexpected post %+v", doc.Post)
	}
	if doc.Metadata.Path != "/reel/OK/" {
		t.Errorf("unexpected metadata %+v", doc.Metadata)
	}

	_, err = processURL(context.Background(), srv.URL+"/reel/PRIVATE/", p, render.NewJSONRenderer())
	if !errors.Is(err, core.ErrVideoNotFound) {
		t.Errorf("expected ErrVideoNotFound, got %v", err)
	}
}
