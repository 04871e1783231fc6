package web2md

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor performs "smart" article extraction, an alternative to the
// selector based content locator.
type Extractor interface {
	// Extract processes the page and returns its main content.
	// Returns EINVALID for an empty page.
	Extract(page *Page) (*ExtractResult, error)
}
