package mock

import (
	"context"

	"github.com/fwojciec/web2md"
)

var _ web2md.TabBridge = (*TabBridge)(nil)

// TabBridge is a mock implementation of web2md.TabBridge.
type TabBridge struct {
	OpenFn      func(ctx context.Context, url string) (*web2md.Tab, error)
	ActiveTabFn func(ctx context.Context) (*web2md.Tab, error)
	ReadyFn     func(ctx context.Context, tabID string) bool
	EnsureFn    func(ctx context.Context, tabID string) error
	ConvertFn   func(ctx context.Context, tabID string, opts web2md.Options) <-chan web2md.Result
	CloseFn     func() error
}

func (b *TabBridge) Open(ctx context.Context, url string) (*web2md.Tab, error) {
	return b.OpenFn(ctx, url)
}

func (b *TabBridge) ActiveTab(ctx context.Context) (*web2md.Tab, error) {
	return b.ActiveTabFn(ctx)
}

func (b *TabBridge) Ready(ctx context.Context, tabID string) bool {
	return b.ReadyFn(ctx, tabID)
}

func (b *TabBridge) Ensure(ctx context.Context, tabID string) error {
	return b.EnsureFn(ctx, tabID)
}

func (b *TabBridge) Convert(ctx context.Context, tabID string, opts web2md.Options) <-chan web2md.Result {
	return b.ConvertFn(ctx, tabID, opts)
}

func (b *TabBridge) Close() error {
	return b.CloseFn()
}
