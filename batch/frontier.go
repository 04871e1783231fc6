package batch

import (
	"sync"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/bloom"
)

// Compile-time interface verification.
var _ web2md.URLFrontier = (*Frontier)(nil)

// Frontier is a FIFO queue of URLs backed by a Bloom filter, so a page is
// queued at most once however many pages link to it. URLs that differ only
// by fragment are the same page. Frontier is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.URLSet
	queue []string
}

// NewFrontier creates a Frontier sized for n URLs with the given false
// positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewURLSet(n, fpRate)}
}

// Push queues url unless it has been seen before.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Add(url) {
		return false
	}
	f.queue = append(f.queue, bloom.Normalize(url))
	return true
}

// Pop returns the oldest queued URL.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
