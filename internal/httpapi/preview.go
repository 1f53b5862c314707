// ABOUTME: Markdown to HTML rendering for the live preview pane.
// ABOUTME: Uses goldmark with GitHub-flavored extensions; raw HTML in notes is not passed through.

package httpapi

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

type PreviewRenderer struct {
	md goldmark.Markdown
}

func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Render converts markdown source to an HTML fragment.
func (p *PreviewRenderer) Render(source string) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(source), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
