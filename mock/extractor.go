package mock

import "github.com/fwojciec/web2md"

var _ web2md.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of web2md.Extractor.
type Extractor struct {
	ExtractFn func(page *web2md.Page) (*web2md.ExtractResult, error)
}

func (e *Extractor) Extract(page *web2md.Page) (*web2md.ExtractResult, error) {
	return e.ExtractFn(page)
}
