package web2md

import "context"

// URLFrontier is the queue of pages still to visit when a batch run follows
// links. Each URL is queued at most once.
type URLFrontier interface {
	// Push queues url. Returns false if the URL has already been seen.
	Push(url string) bool

	// Pop returns the next URL in discovery order.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of queued URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// LinkExtractor finds the pages a document links to.
type LinkExtractor interface {
	// ExtractLinks returns the absolute same-site links in html, resolved
	// against baseURL.
	ExtractLinks(html, baseURL string) ([]string, error)
}
