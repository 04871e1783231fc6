package mock

import (
	"context"

	"github.com/fwojciec/web2md"
)

var _ web2md.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of web2md.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}
