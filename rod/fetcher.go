package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/web2md"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements web2md.Fetcher at compile time.
var _ web2md.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves JavaScript-rendered HTML by loading each URL in a fresh
// tab of a managed browser. Fetcher is safe for concurrent use.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher launches a browser configured by opts.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	m, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: m}, nil
}

// Fetch loads url, waits for the load event and returns the serialized DOM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer page.Close()
	defer f.manager.PageDone()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return html, nil
}

// LauncherPID returns the process ID of the underlying browser.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close stops the browser.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
