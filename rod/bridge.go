package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/web2md"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Bridge implements web2md.TabBridge at compile time.
var _ web2md.TabBridge = (*Bridge)(nil)

const faviconJS = `() => {
	const link = document.querySelector('link[rel~="icon" i]');
	return link ? link.href : new URL('/favicon.ico', location.href).href;
}`

// Bridge keeps a set of open browser tabs and converts their rendered
// documents. The most recently opened tab is the active one.
//
// Bridge is safe for concurrent use.
type Bridge struct {
	manager   *BrowserManager
	converter web2md.Converter

	mu     sync.Mutex
	tabs   map[string]*rod.Page
	active string
}

// NewBridge returns a Bridge that opens tabs in the browser run by manager
// and converts them with converter.
func NewBridge(manager *BrowserManager, converter web2md.Converter) *Bridge {
	return &Bridge{
		manager:   manager,
		converter: converter,
		tabs:      make(map[string]*rod.Page),
	}
}

// Open creates a tab for url, waits for it to load and activates it.
func (b *Bridge) Open(ctx context.Context, url string) (*web2md.Tab, error) {
	page, err := b.manager.Browser().Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}

	id := string(page.TargetID)
	b.mu.Lock()
	b.tabs[id] = page
	b.active = id
	b.mu.Unlock()

	return b.describe(ctx, id, page), nil
}

// ActiveTab returns the tab opened last.
func (b *Bridge) ActiveTab(ctx context.Context) (*web2md.Tab, error) {
	b.mu.Lock()
	id := b.active
	page := b.tabs[id]
	b.mu.Unlock()

	if page == nil {
		return nil, web2md.Errorf(web2md.ENOTFOUND, "no active tab")
	}
	return b.describe(ctx, id, page), nil
}

// Ready reports whether the tab's document has finished loading. Unknown
// tabs are never ready.
func (b *Bridge) Ready(ctx context.Context, tabID string) bool {
	page, err := b.page(tabID)
	if err != nil {
		return false
	}
	res, err := page.Context(ctx).Eval(`() => document.readyState`)
	if err != nil {
		return false
	}
	return res.Value.Str() == "complete"
}

// Ensure waits for the tab's document to load unless it already has.
func (b *Bridge) Ensure(ctx context.Context, tabID string) error {
	page, err := b.page(tabID)
	if err != nil {
		return err
	}
	if b.Ready(ctx, tabID) {
		return nil
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("waiting for tab %s: %w", tabID, err)
	}
	return nil
}

// Convert snapshots the tab and converts it in the background. The returned
// channel yields a single Result and is closed.
func (b *Bridge) Convert(ctx context.Context, tabID string, opts web2md.Options) <-chan web2md.Result {
	results := make(chan web2md.Result, 1)

	go func() {
		defer close(results)

		page, err := b.snapshot(ctx, tabID)
		if err != nil {
			results <- web2md.Result{TabID: tabID, Err: err}
			return
		}
		results <- Run(b.converter, tabID, page, opts)
	}()

	return results
}

// Close closes every tab. The browser itself belongs to the manager.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var first error
	for id, page := range b.tabs {
		if err := page.Close(); err != nil && first == nil {
			first = err
		}
		delete(b.tabs, id)
	}
	b.active = ""
	return first
}

// Run converts page and packages the outcome as a Result for tabID. A panic
// in the converter is reported as ECONVERSION.
func Run(conv web2md.Converter, tabID string, page *web2md.Page, opts web2md.Options) (res web2md.Result) {
	res.TabID = tabID
	defer func() {
		if r := recover(); r != nil {
			res.Document = nil
			res.Err = web2md.Errorf(web2md.ECONVERSION, "conversion panicked: %v", r)
		}
	}()

	doc, err := conv.Convert(page, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Document = doc
	return res
}

func (b *Bridge) page(tabID string) (*rod.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, ok := b.tabs[tabID]
	if !ok {
		return nil, web2md.Errorf(web2md.ENOTFOUND, "tab %s not found", tabID)
	}
	return page, nil
}

func (b *Bridge) snapshot(ctx context.Context, tabID string) (*web2md.Page, error) {
	if err := b.Ensure(ctx, tabID); err != nil {
		return nil, err
	}
	page, err := b.page(tabID)
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("reading tab %s: %w", tabID, err)
	}
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading tab %s: %w", tabID, err)
	}
	return &web2md.Page{URL: info.URL, Title: info.Title, HTML: html}, nil
}

func (b *Bridge) describe(ctx context.Context, id string, page *rod.Page) *web2md.Tab {
	tab := &web2md.Tab{ID: id}
	page = page.Context(ctx)
	if info, err := page.Info(); err == nil {
		tab.URL = info.URL
		tab.Title = info.Title
	}
	if res, err := page.Eval(faviconJS); err == nil {
		tab.FaviconURL = res.Value.Str()
	}
	return tab
}
