package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/web2md"
)

// Ensure SitemapSource implements web2md.URLSource at compile time.
var _ web2md.URLSource = (*SitemapSource)(nil)

// maxSitemapDepth bounds sitemap index nesting.
const maxSitemapDepth = 5

// SitemapSource lists the pages of a site from its sitemaps. Sitemaps are
// taken from robots.txt Sitemap directives, falling back to /sitemap.xml.
// Sitemap indexes are followed.
type SitemapSource struct {
	client *http.Client
	filter *web2md.URLFilter
}

// NewSitemapSource creates a SitemapSource. A nil client means
// http.DefaultClient; a nil filter accepts every URL.
func NewSitemapSource(client *http.Client, filter *web2md.URLFilter) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client, filter: filter}
}

// Discover returns the page URLs of the site at siteURL, deduplicated and
// in sitemap order. When siteURL has a path, only pages below that path are
// returned, so https://example.com/docs selects /docs/... but not
// /documentation. Returns an empty slice when the site has no sitemap.
func (s *SitemapSource) Discover(ctx context.Context, siteURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(siteURL)
	if err != nil || !base.IsAbs() {
		return nil, web2md.Errorf(web2md.EINVALID, "invalid site URL: %q", siteURL)
	}
	prefix := strings.TrimSuffix(base.Path, "/")

	sitemaps, err := s.locateSitemaps(ctx, base)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenURL := make(map[string]bool)
	seenSitemap := make(map[string]bool)
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemap, 0)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURL[u] || !underPath(u, prefix) || !s.filter.Match(u) {
				continue
			}
			seenURL[u] = true
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// underPath reports whether rawURL lies below prefix at a path boundary.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

func (s *SitemapSource) locateSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	root := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}

	if body, err := s.get(ctx, root.JoinPath("robots.txt").String()); err == nil {
		defer body.Close()
		var sitemaps []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
				if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
					sitemaps = append(sitemaps, loc)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.JoinPath("sitemap.xml").String()
	body, err := s.get(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	body.Close()
	return []string{fallback}, nil
}

// readSitemap returns the page URLs of a urlset, following nested
// sitemap indexes up to maxSitemapDepth.
func (s *SitemapSource) readSitemap(ctx context.Context, loc string, seen map[string]bool, depth int) ([]string, error) {
	if seen[loc] || depth > maxSitemapDepth {
		return nil, nil
	}
	seen[loc] = true

	body, err := s.get(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locs(root, "sitemap") {
			found, err := s.readSitemap(ctx, child, seen, depth+1)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}
	return locs(root, "url"), nil
}

// locs returns the loc texts of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		if loc := el.SelectElement("loc"); loc != nil {
			if v := strings.TrimSpace(loc.Text()); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func (s *SitemapSource) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}
