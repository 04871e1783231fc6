package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/web2md"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements web2md.Extractor at compile time.
var _ web2md.Extractor = (*Extractor)(nil)

// Extractor finds the article in a page with go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article content of page. Relative references are
// resolved against the page URL when it is absolute.
func (e *Extractor) Extract(page *web2md.Page) (*web2md.ExtractResult, error) {
	if page == nil || page.HTML == "" {
		return nil, web2md.Errorf(web2md.EINVALID, "empty HTML input")
	}

	var pageURL *url.URL
	if u, err := url.Parse(page.URL); err == nil && u.IsAbs() {
		pageURL = u
	}

	article, err := readability.FromReader(strings.NewReader(page.HTML), pageURL)
	if err != nil {
		return nil, err
	}

	return &web2md.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
