package batch

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/web2md"
	"golang.org/x/time/rate"
)

var _ web2md.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host so that a batch run spreads
// its requests to a site over time while different hosts proceed
// independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter allows rps requests per second to each domain with no
// bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	domain = strings.ToLower(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
