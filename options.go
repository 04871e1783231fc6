package web2md

// Options controls a single conversion. It is passed by value so that it
// cannot change while a conversion runs.
type Options struct {
	// IncludeImages keeps <img> elements. When false every image is removed
	// before the rule set runs.
	IncludeImages bool `json:"includeImages"`

	// IncludeLinks keeps anchors as Markdown links. When false every anchor is
	// replaced by its text content.
	IncludeLinks bool `json:"includeLinks"`

	// SmartExtraction asks for article extraction instead of the selector
	// based content locator. It only takes effect when a smart extractor has
	// been configured on the converter; otherwise manual extraction is used.
	SmartExtraction bool `json:"smartExtraction"`
}

// DefaultOptions returns the options used when the caller supplies none.
func DefaultOptions() Options {
	return Options{
		IncludeImages:   true,
		IncludeLinks:    true,
		SmartExtraction: true,
	}
}
