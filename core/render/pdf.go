// Package render — PDF renderer.
// Lays the post card out as a single A4 page with gofpdf. The card is first
// normalized to Markdown and then drawn line by line, so headings, captions and
// hashtag lists look the same as in the Markdown output.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/normalize"
)

var (
	linkRegex   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	escapeRegex = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+\-.!<>|])`)
	italicRegex = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
)

// PDFRenderer renders a post card as a PDF document.
type PDFRenderer struct {
	normalizer core.Normalizer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{normalizer: normalize.New()}
}

// Render draws the post and returns the PDF bytes.
func (r *PDFRenderer) Render(result core.ExtractionResult, meta core.PostMetadata) ([]byte, error) {
	markdown, err := toMarkdown(r.normalizer, result, meta)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfTitle(result), true)
	pdf.SetCreator("reelpipe", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; anything outside it is dropped by the translator.
	cp := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			pdf.Ln(3)

		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, cp(cleanInlineMarkdown(strings.TrimLeft(trimmed, "# "))), level)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cp("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)

		case isSourceLine(trimmed):
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, cp(cleanInlineMarkdown(trimmed)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cp(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func pdfTitle(result core.ExtractionResult) string {
	if result.Username == "" {
		return "Instagram post"
	}
	return "@" + result.Username
}

func isSourceLine(line string) bool {
	line = strings.TrimLeft(line, "*")
	return strings.HasPrefix(line, "Source:")
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 13, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
// Links keep their text, or their target when the text is empty.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = linkRegex.ReplaceAllStringFunc(text, func(m string) string {
		parts := linkRegex.FindStringSubmatch(m)
		if parts[1] == "" {
			return parts[2]
		}
		return parts[1]
	})
	text = escapeRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
