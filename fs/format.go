// Package fs saves converted documents to the local file system.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/web2md"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		return "index.md", nil
	case strings.HasSuffix(p, "/"):
		return p + "index.md", nil
	case path.Ext(p) == ".html" || path.Ext(p) == ".htm":
		return strings.TrimSuffix(p, path.Ext(p)) + ".md", nil
	}
	return p + ".md", nil
}

// Frontmatter is the YAML header written above a saved document.
type Frontmatter struct {
	Source    string           `yaml:"source"`
	Title     string           `yaml:"title,omitempty"`
	Converted time.Time        `yaml:"converted"`
	Hash      string           `yaml:"hash,omitempty"`
	Headings  []web2md.Heading `yaml:"headings,omitempty"`
}

// FormatDocument returns doc's Markdown preceded by a YAML frontmatter
// block describing its source and outline.
func FormatDocument(doc *web2md.Document) (string, error) {
	converted := doc.ConvertedAt
	if converted.IsZero() {
		converted = time.Now()
	}
	fm := Frontmatter{
		Source:    doc.URL,
		Title:     doc.Title,
		Converted: converted.UTC().Truncate(time.Second),
		Hash:      doc.ContentHash,
		Headings:  web2md.Outline(doc.Markdown),
	}

	out, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	b.WriteString(doc.Markdown)
	b.WriteString("\n")
	return b.String(), nil
}

// ParseFrontmatter splits a formatted document into its frontmatter and
// Markdown body. Content without a frontmatter block is returned unchanged
// with a nil header.
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return nil, content, nil
	}
	header, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, "", web2md.Errorf(web2md.EINVALID, "invalid frontmatter: %v", err)
	}
	return &fm, strings.TrimPrefix(body, "\n"), nil
}
