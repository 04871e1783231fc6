package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/web2md"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements web2md.Extractor at compile time.
var _ web2md.Extractor = (*Extractor)(nil)

// Extractor finds the main content of a page with go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of page. Tables, images and links are
// kept so the converter options decide what survives.
func (e *Extractor) Extract(page *web2md.Page) (*web2md.ExtractResult, error) {
	if page == nil || page.HTML == "" {
		return nil, web2md.Errorf(web2md.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	}
	if u, err := url.Parse(page.URL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(page.HTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &web2md.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
