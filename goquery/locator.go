package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/web2md"
)

// ContentSelectors lists the main content regions in priority order.
// Confluence containers come first; body is the last resort.
var ContentSelectors = []string{
	".wiki-content",
	"#main-content",
	"main",
	"article",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	"#content",
	"#main",
	".main-content",
	"body",
}

// Locate returns a detached copy of the first element matching
// ContentSelectors. Changes to the copy never reach doc.
// Returns ECONTENTNOTFOUND if no selector matches.
func Locate(doc *goquery.Document) (*goquery.Selection, error) {
	for _, selector := range ContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel.Clone(), nil
		}
	}
	return nil, web2md.Errorf(web2md.ECONTENTNOTFOUND, "no content region found")
}

// LocateSelector returns a detached copy of the first element matching a
// caller supplied CSS selector.
// Returns ECONTENTNOTFOUND if the selector is invalid or matches nothing.
func LocateSelector(doc *goquery.Document, selector string) (*goquery.Selection, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, web2md.Errorf(web2md.ECONTENTNOTFOUND, "invalid selector %q: %v", selector, err)
	}
	sel := doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil, web2md.Errorf(web2md.ECONTENTNOTFOUND, "no element matches %q", selector)
	}
	return sel.Clone(), nil
}
