package mock

import (
	"context"

	"github.com/fwojciec/web2md"
)

var _ web2md.DownloadSink = (*DownloadSink)(nil)

// DownloadSink is a mock implementation of web2md.DownloadSink.
type DownloadSink struct {
	DownloadFn func(ctx context.Context, content []byte, suggestedFilename string) (string, error)
}

func (s *DownloadSink) Download(ctx context.Context, content []byte, suggestedFilename string) (string, error) {
	return s.DownloadFn(ctx, content, suggestedFilename)
}

var _ web2md.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of web2md.Clipboard.
type Clipboard struct {
	CopyFn func(text string) error
}

func (c *Clipboard) Copy(text string) error {
	return c.CopyFn(text)
}

var _ web2md.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of web2md.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, doc *web2md.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, doc *web2md.Document) error {
	return s.SaveFn(ctx, doc)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
