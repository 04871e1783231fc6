package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/web2md"
)

// Links returns the same-host pages linked from rawHTML, resolved against
// baseURL, in document order. Fragments are dropped and each URL appears
// once. Links back to the page itself are skipped.
func Links(rawHTML, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, web2md.Errorf(web2md.EINVALID, "invalid base URL: %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, web2md.Errorf(web2md.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] || !isSameHost(base, resolved) {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links, nil
}

// resolveURL resolves href against base without its fragment. Returns an
// empty string for unparsable references and for the base page itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return ""
	}
	return resolved.String()
}

// isSameHost uses exact host matching; subdomains are different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}

// Ensure LinkExtractor implements web2md.LinkExtractor at compile time.
var _ web2md.LinkExtractor = LinkExtractor{}

// LinkExtractor exposes Links as a web2md.LinkExtractor.
type LinkExtractor struct{}

// ExtractLinks calls Links.
func (LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return Links(html, baseURL)
}
