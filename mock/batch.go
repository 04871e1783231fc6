package mock

import (
	"context"

	"github.com/fwojciec/web2md"
)

var _ web2md.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of web2md.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ web2md.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of web2md.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
