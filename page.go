package web2md

import "context"

// Page is a snapshot of a rendered document: the serialized DOM of a tab
// together with the location it was loaded from.
type Page struct {
	// URL is the page location. Relative image and link URLs are resolved
	// against it.
	URL string

	// Title is the document title as reported by the tab. When empty the
	// converter falls back to the <title> element.
	Title string

	// HTML is the serialized document.
	HTML string
}

// Tab describes a browser tab.
type Tab struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	FaviconURL string `json:"faviconUrl"`
}

// Result is the one-shot outcome of converting a tab. Exactly one of
// Document and Err is set. TabID lets the caller match the result to the
// request that produced it.
type Result struct {
	TabID    string
	Document *Document
	Err      error
}

// TabBridge resolves browser tabs and runs conversions inside them.
type TabBridge interface {
	// Open loads url in a new tab and makes it the active tab.
	Open(ctx context.Context, url string) (*Tab, error)

	// ActiveTab returns the active tab.
	// Returns ENOTFOUND if no tab is open.
	ActiveTab(ctx context.Context) (*Tab, error)

	// Ready reports whether the tab has finished loading its document.
	Ready(ctx context.Context, tabID string) bool

	// Ensure makes the tab ready for conversion, waiting for the document to
	// load if necessary. Calling Ensure on a ready tab is a no-op.
	Ensure(ctx context.Context, tabID string) error

	// Convert starts a conversion of the tab and returns immediately. The
	// returned channel receives exactly one Result and is then closed.
	Convert(ctx context.Context, tabID string, opts Options) <-chan Result

	// Close releases browser resources.
	Close() error
}
