package mock

import "github.com/fwojciec/web2md"

var _ web2md.Converter = (*Converter)(nil)

// Converter is a mock implementation of web2md.Converter.
type Converter struct {
	ConvertFn func(page *web2md.Page, opts web2md.Options) (*web2md.Document, error)
}

func (c *Converter) Convert(page *web2md.Page, opts web2md.Options) (*web2md.Document, error) {
	return c.ConvertFn(page, opts)
}
