package web2md

// Converter turns a rendered page into a Markdown document.
type Converter interface {
	// Convert runs a complete conversion of page. It either returns a
	// document or an error; a failed conversion yields no partial result.
	// Failures are reported with ECONVERSION.
	Convert(page *Page, opts Options) (*Document, error)
}
