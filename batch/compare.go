package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/fwojciec/web2md"
)

// NeedsBrowser reports whether a site should be fetched with a browser. It
// converts the same page fetched statically and rendered by a browser and
// answers true when the rendered Markdown is more than half again as long,
// or when the static copy cannot be converted.
func NeedsBrowser(url, staticHTML, renderedHTML string, conv web2md.Converter, opts web2md.Options) bool {
	static, err := conv.Convert(&web2md.Page{URL: url, HTML: staticHTML}, opts)
	if err != nil {
		return true
	}
	rendered, err := conv.Convert(&web2md.Page{URL: url, HTML: renderedHTML}, opts)
	if err != nil {
		return false
	}

	staticLen := len(static.Markdown)
	renderedLen := len(rendered.Markdown)
	if staticLen == 0 {
		return renderedLen > 0
	}
	return float64(renderedLen) > float64(staticLen)*1.5
}

// Ensure AutoFetcher implements web2md.Fetcher at compile time.
var _ web2md.Fetcher = (*AutoFetcher)(nil)

// AutoFetcher picks between a static and a browser fetcher. The first page
// is fetched both ways and compared with NeedsBrowser; every later page
// uses the fetcher chosen for the first.
type AutoFetcher struct {
	Static    web2md.Fetcher
	Browser   web2md.Fetcher
	Converter web2md.Converter
	Options   web2md.Options

	// OnDecide is called once with the outcome of the comparison.
	OnDecide func(useBrowser bool)

	mu         sync.Mutex
	decided    bool
	useBrowser bool
}

// Fetch returns the HTML of url from the chosen fetcher. Until a page has
// been fetched statically no choice is made and each call probes again.
func (f *AutoFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	if f.decided {
		useBrowser := f.useBrowser
		f.mu.Unlock()
		if useBrowser {
			return f.Browser.Fetch(ctx, url)
		}
		return f.Static.Fetch(ctx, url)
	}
	defer f.mu.Unlock()
	return f.probe(ctx, url)
}

func (f *AutoFetcher) probe(ctx context.Context, url string) (string, error) {
	static, err := f.Static.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	rendered, err := f.Browser.Fetch(ctx, url)
	if err != nil {
		f.decide(false)
		return static, nil
	}
	if NeedsBrowser(url, static, rendered, f.Converter, f.Options) {
		f.decide(true)
		return rendered, nil
	}
	f.decide(false)
	return static, nil
}

func (f *AutoFetcher) decide(useBrowser bool) {
	f.decided = true
	f.useBrowser = useBrowser
	if f.OnDecide != nil {
		f.OnDecide(useBrowser)
	}
}

// Close closes both fetchers.
func (f *AutoFetcher) Close() error {
	return errors.Join(f.Static.Close(), f.Browser.Close())
}
