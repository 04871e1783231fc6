// Package goldmark renders converted Markdown as HTML for previews.
package goldmark

import (
	"bytes"
	"fmt"
	"html"

	"github.com/fwojciec/web2md"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Ensure Renderer implements web2md.HTMLRenderer at compile time.
var _ web2md.HTMLRenderer = (*Renderer)(nil)

// Renderer renders GitHub flavored Markdown. Raw HTML in the input is
// omitted from the output.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a Renderer with tables, strikethrough, autolinks and
// heading IDs enabled.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{md: md}
}

// RenderHTML returns the HTML fragment for markdown.
func (r *Renderer) RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", web2md.Errorf(web2md.ECONVERSION, "rendering markdown: %v", err)
	}
	return buf.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 48rem; margin: 2rem auto; font-family: sans-serif; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderPage wraps the rendered markdown in a standalone HTML document.
func (r *Renderer) RenderPage(title, markdown string) (string, error) {
	body, err := r.RenderHTML(markdown)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = web2md.DefaultFilename
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body), nil
}
