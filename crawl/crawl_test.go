package crawl

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/gaurav-prasanna/reelpipe/core"
)

type stubFetcher struct {
	html string
	err  error
	got  []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	f.got = append(f.got, url)
	if f.err != nil {
		return nil, f.err
	}
	return &core.FetchResult{URL: url, StatusCode: 200, HTML: f.html}, nil
}

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

func TestIsPostURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.instagram.com/reel/C1a2B3/", true},
		{"https://instagram.com/reel/C1a2B3", true},
		{"https://m.instagram.com/p/XYZ/?igsh=abc", true},
		{"https://www.instagram.com/tv/OLD123/", true},
		{"https://www.instagram.com/reels/C1a2B3/", true},
		{"HTTPS://WWW.INSTAGRAM.COM/reel/Up/", true},
		{"https://www.instagram.com/reel/", false},
		{"https://www.instagram.com/natgeo/", false},
		{"https://www.instagram.com/explore/tags/travel/", false},
		{"https://notinstagram.com/reel/abc/", false},
		{"https://evil.example/instagram.com/reel/abc/", false},
		{"ftp://www.instagram.com/reel/abc/", false},
		{"/reel/abc/", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		if got := IsPostURL(tt.url); got != tt.want {
			t.Errorf("IsPostURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.instagram.com/reel/ABC/", "https://www.instagram.com/reel/ABC"},
		{"https://www.instagram.com/reel/ABC/?igsh=xyz#top", "https://www.instagram.com/reel/ABC"},
		{"https://WWW.Instagram.com/p/Q/", "https://www.instagram.com/p/Q"},
		{"https://www.instagram.com/", "https://www.instagram.com/"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Queue
// ---------------------------------------------------------------------------

func TestQueue(t *testing.T) {
	t.Parallel()
	q := NewQueue()
	if !q.Add("a") || !q.Add("b") {
		t.Fatal("expected new urls to be added")
	}
	if q.Add("a") {
		t.Error("expected duplicate to be rejected")
	}
	if q.Len() != 2 {
		t.Errorf("expected 2 items, got %d", q.Len())
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(q.All(), want) {
		t.Errorf("expected %v, got %v", want, q.All())
	}
}

// ---------------------------------------------------------------------------
// Discovery
// ---------------------------------------------------------------------------

func TestDiscoverPosts_ProfilePage(t *testing.T) {
	t.Parallel()
	f := &stubFetcher{html: `<html><body>
		<a href="/reel/AAA/">one</a>
		<a href="https://www.instagram.com/p/BBB/?igsh=share">two</a>
		<a href="/reel/AAA/?utm_source=ig">dup</a>
		<a href="/natgeo/followers/">followers</a>
		<a href="mailto:hi@example.com">mail</a>
		<a href="#top">top</a>
		<a href="https://example.com/reel/CCC/">elsewhere</a>
		<a href="/tv/DDD">tv</a>
	</body></html>`}

	got, err := DiscoverPosts(context.Background(), "https://www.instagram.com/natgeo/", f)
	if err != nil {
		t.Fatalf("DiscoverPosts: %v", err)
	}
	want := []string{
		"https://www.instagram.com/reel/AAA",
		"https://www.instagram.com/p/BBB",
		"https://www.instagram.com/tv/DDD",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if len(f.got) != 1 || f.got[0] != "https://www.instagram.com/natgeo/" {
		t.Errorf("expected a single fetch of the page, got %v", f.got)
	}
}

func TestDiscoverPosts_PostPageComesFirst(t *testing.T) {
	t.Parallel()
	f := &stubFetcher{html: `<a href="/reel/OTHER/">more</a><a href="/reel/SELF/">self</a>`}

	got, err := DiscoverPosts(context.Background(), "https://www.instagram.com/reel/SELF/", f)
	if err != nil {
		t.Fatalf("DiscoverPosts: %v", err)
	}
	want := []string{"https://www.instagram.com/reel/SELF", "https://www.instagram.com/reel/OTHER"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDiscoverPosts_FetchError(t *testing.T) {
	t.Parallel()
	boom := errors.New("timeout")
	_, err := DiscoverPosts(context.Background(), "https://www.instagram.com/natgeo/", &stubFetcher{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestDiscoverPosts_NoLinks(t *testing.T) {
	t.Parallel()
	got, err := DiscoverPosts(context.Background(), "https://www.instagram.com/natgeo/", &stubFetcher{html: "<p>login</p>"})
	if err != nil {
		t.Fatalf("DiscoverPosts: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no posts, got %v", got)
	}
}
