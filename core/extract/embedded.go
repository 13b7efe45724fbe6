package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// embeddedMarker identifies the inline script that hydrates a post page.
const embeddedMarker = "shortcode_media"

// Paths below entry_data.PostPage[0].graphql.shortcode_media.
const (
	mediaPath    = "entry_data.PostPage.0.graphql.shortcode_media"
	videoPath    = mediaPath + ".video_url"
	captionPath  = mediaPath + ".edge_media_to_caption.edges.0.node.text"
	usernamePath = mediaPath + ".owner.username"
)

// embeddedPost holds the fields recovered from inline JSON.
// Empty strings mean the key was missing or not a non-empty string.
type embeddedPost struct {
	VideoURL string
	Caption  string
	Username string
}

// fromScripts scans inline scripts in document order and returns the fields
// of the first marker-bearing script whose JSON parses. Scripts with
// malformed JSON are skipped. ok is false when no script qualified.
func fromScripts(doc *goquery.Document) (post embeddedPost, skipped int, ok bool) {
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		if !strings.Contains(body, embeddedMarker) {
			return true
		}
		root, parsed := parseEmbedded(body)
		if !parsed {
			skipped++
			return true
		}
		post = embeddedPost{
			VideoURL: stringAt(root, videoPath),
			Caption:  stringAt(root, captionPath),
			Username: stringAt(root, usernamePath),
		}
		ok = true
		return false
	})
	return post, skipped, ok
}

// parseEmbedded parses script from its first '{' to the end.
// The remainder must be a single valid JSON value.
func parseEmbedded(script string) (gjson.Result, bool) {
	i := strings.IndexByte(script, '{')
	if i < 0 {
		return gjson.Result{}, false
	}
	raw := script[i:]
	if !gjson.Valid(raw) {
		return gjson.Result{}, false
	}
	return gjson.Parse(raw), true
}

// stringAt returns the string at path, or "" when any step is missing or
// the value is not a string.
func stringAt(root gjson.Result, path string) string {
	v := root.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
