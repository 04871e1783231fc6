package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/web2md"
	"golang.org/x/net/html"
)

// Ensure Converter implements web2md.Converter at compile time.
var _ web2md.Converter = (*Converter)(nil)

// Converter turns page snapshots into Markdown documents. It holds only
// configuration and may be used from several goroutines.
type Converter struct {
	rules            *RuleSet
	selector         string
	extractor        web2md.Extractor
	tablesNeverBlank bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithRules replaces the default rule set.
func WithRules(rules *RuleSet) Option {
	return func(c *Converter) {
		c.rules = rules
	}
}

// WithSelector converts the first element matching selector instead of the
// automatically located content region.
func WithSelector(selector string) Option {
	return func(c *Converter) {
		c.selector = selector
	}
}

// WithSmartExtractor sets the extractor used when Options.SmartExtraction is
// enabled. Without one, smart extraction requests use the content locator.
func WithSmartExtractor(e web2md.Extractor) Option {
	return func(c *Converter) {
		c.extractor = e
	}
}

// WithTablesNeverBlank controls whether empty tables still reach the table
// rule. Enabled by default.
func WithTablesNeverBlank(v bool) Option {
	return func(c *Converter) {
		c.tablesNeverBlank = v
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		rules:            DefaultRules(),
		tablesNeverBlank: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert locates the content of page, removes noise, applies the image and
// link options, renders Markdown and prefixes the page title as a heading.
// Returns ECONVERSION if the content cannot be located or rendered.
func (c *Converter) Convert(page *web2md.Page, opts web2md.Options) (doc *web2md.Document, err error) {
	if page == nil {
		return nil, web2md.Errorf(web2md.EINVALID, "page required")
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = web2md.Errorf(web2md.ECONVERSION, "conversion failed: %v", r)
		}
	}()

	root, title, err := c.Prepare(page, opts)
	if err != nil {
		return nil, err
	}

	var base *url.URL
	if u, err := url.Parse(page.URL); err == nil && u.IsAbs() {
		base = u
	}
	r := NewRenderer(c.rules, RenderContext{BaseURL: base, TablesNeverBlank: c.tablesNeverBlank})

	markdown := web2md.PostProcess(r.Render(root))
	if title != "" {
		markdown = fmt.Sprintf("# %s\n\n%s", title, markdown)
	}

	return &web2md.Document{
		URL:      page.URL,
		Title:    title,
		Markdown: markdown,
	}, nil
}

// Prepare returns the cleaned content root of page together with the page
// title: the located region with noise removed and images or links stripped
// according to opts. The returned tree is detached and owned by the caller.
// Returns ECONVERSION if the content cannot be located.
func (c *Converter) Prepare(page *web2md.Page, opts web2md.Options) (*html.Node, string, error) {
	if page == nil {
		return nil, "", web2md.Errorf(web2md.EINVALID, "page required")
	}
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, "", web2md.Errorf(web2md.ECONVERSION, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(page.Title)
	if title == "" {
		title = Title(parsed)
	}

	root, extractedTitle, err := c.locate(parsed, page, opts)
	if err != nil {
		return nil, "", web2md.Errorf(web2md.ECONVERSION, "content not found: %s", web2md.ErrorMessage(err))
	}
	if title == "" {
		title = extractedTitle
	}

	RemoveNoise(root)
	if !opts.IncludeImages {
		StripImages(root)
	}
	if !opts.IncludeLinks {
		StripLinks(root)
	}
	return root.Get(0), title, nil
}

// locate picks the subtree to convert. Smart extraction is used only when
// requested and configured; if it fails the content locator takes over.
func (c *Converter) locate(doc *goquery.Document, page *web2md.Page, opts web2md.Options) (*goquery.Selection, string, error) {
	if c.selector != "" {
		root, err := LocateSelector(doc, c.selector)
		return root, "", err
	}

	if opts.SmartExtraction && c.extractor != nil {
		if res, err := c.extractor.Extract(page); err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			extracted, err := goquery.NewDocumentFromReader(strings.NewReader(res.ContentHTML))
			if err == nil {
				if body := extracted.Find("body").First(); body.Length() > 0 {
					return body.Clone(), res.Title, nil
				}
			}
		}
	}

	root, err := Locate(doc)
	return root, "", err
}
