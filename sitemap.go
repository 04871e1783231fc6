package web2md

import (
	"context"
	"regexp"
)

// URLSource lists the pages of a site for batch conversion.
type URLSource interface {
	// Discover returns the page URLs published by the site at siteURL.
	// An empty slice means the site publishes none.
	Discover(ctx context.Context, siteURL string) ([]string, error)
}

// URLFilter selects URLs by pattern. A nil filter accepts every URL.
type URLFilter struct {
	// Include patterns. When set, a URL must match at least one.
	Include []*regexp.Regexp

	// Exclude patterns, applied after Include.
	Exclude []*regexp.Regexp
}

// CompileURLFilter builds a filter from include and exclude expressions.
// Returns EINVALID for an expression that does not compile.
func CompileURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, expr := range include {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", expr, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", expr, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether url passes the filter.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

// Apply returns the URLs that pass the filter, preserving order.
func (f *URLFilter) Apply(urls []string) []string {
	if f == nil {
		return urls
	}
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
