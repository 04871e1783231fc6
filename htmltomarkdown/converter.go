package htmltomarkdown

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/web2md"
	"golang.org/x/net/html"
)

// Ensure Converter implements web2md.Converter at compile time.
var _ web2md.Converter = (*Converter)(nil)

// Preparer selects and cleans the part of a page to convert.
type Preparer interface {
	Prepare(page *web2md.Page, opts web2md.Options) (root *html.Node, title string, err error)
}

// Converter converts pages with the html-to-markdown library. It serves as
// a second engine for comparing output against the rule based converter.
type Converter struct {
	conv     *converter.Converter
	preparer Preparer
}

// NewConverter creates a new Converter. Content selection, noise removal
// and image or link stripping are delegated to preparer; a nil preparer
// converts the whole document and ignores the image and link options.
func NewConverter(preparer Preparer) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, preparer: preparer}
}

// Convert transforms page into a Markdown document with the same title
// prefix and post-processing as the rule based converter.
func (c *Converter) Convert(page *web2md.Page, opts web2md.Options) (*web2md.Document, error) {
	if page == nil || strings.TrimSpace(page.HTML) == "" {
		return nil, web2md.Errorf(web2md.EINVALID, "empty HTML input")
	}

	root, title, err := c.prepare(page, opts)
	if err != nil {
		return nil, err
	}

	var convOpts []converter.ConvertOptionFunc
	if u, err := url.Parse(page.URL); err == nil && u.IsAbs() {
		convOpts = append(convOpts, converter.WithDomain(page.URL))
	}

	out, err := c.conv.ConvertNode(root, convOpts...)
	if err != nil {
		return nil, web2md.Errorf(web2md.ECONVERSION, "html-to-markdown: %v", err)
	}

	markdown := web2md.PostProcess(string(out))
	if title != "" {
		markdown = fmt.Sprintf("# %s\n\n%s", title, markdown)
	}

	return &web2md.Document{
		URL:      page.URL,
		Title:    title,
		Markdown: markdown,
	}, nil
}

func (c *Converter) prepare(page *web2md.Page, opts web2md.Options) (*html.Node, string, error) {
	if c.preparer != nil {
		return c.preparer.Prepare(page, opts)
	}
	doc, err := html.Parse(strings.NewReader(page.HTML))
	if err != nil {
		return nil, "", web2md.Errorf(web2md.ECONVERSION, "failed to parse HTML: %v", err)
	}
	return doc, strings.TrimSpace(page.Title), nil
}
