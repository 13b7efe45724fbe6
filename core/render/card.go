package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/gaurav-prasanna/reelpipe/core"
)

// cardTemplate lays out a post as an HTML fragment. The Markdown and PDF
// renderers both start from it so they show the same fields in the same order.
var cardTemplate = template.Must(template.New("card").Funcs(template.FuncMap{
	"lines": captionLines,
}).Parse(`<article>
<h1>{{if .Post.Username}}@{{.Post.Username}}{{else}}Post{{end}}</h1>
{{range lines .Post.Caption}}<p>{{.}}</p>
{{end}}{{if .Post.Hashtags}}<h2>Hashtags</h2>
<ul>{{range .Post.Hashtags}}<li>#{{.}}</li>{{end}}</ul>
{{end}}<h2>Video</h2>
<p><a href="{{.Post.VideoURL}}">{{.Post.VideoURL}}</a></p>
{{if .Meta.URL}}<p><em>Source: {{.Meta.URL}}{{if .Meta.FetchedAt}} ({{.Meta.FetchedAt}}){{end}}</em></p>{{end}}
</article>`))

type cardData struct {
	Post core.ExtractionResult
	Meta core.PostMetadata
}

// renderCard executes cardTemplate for one post.
func renderCard(result core.ExtractionResult, meta core.PostMetadata) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, cardData{Post: result, Meta: meta}); err != nil {
		return "", fmt.Errorf("rendering post card: %w", err)
	}
	return buf.String(), nil
}

// captionLines splits a caption into its non-blank lines.
func captionLines(caption string) []string {
	var out []string
	for _, line := range strings.Split(caption, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
