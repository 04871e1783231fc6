// Package bloom remembers visited URLs in a Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// URLSet is a probabilistic set of URLs. Membership tests may report false
// positives at the configured rate but never false negatives. URLSet is not
// safe for concurrent use.
type URLSet struct {
	f *bloom.BloomFilter
}

// NewURLSet returns a set sized for n URLs with the given false positive
// rate.
func NewURLSet(n uint, fpRate float64) *URLSet {
	return &URLSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add inserts rawURL and reports whether it was absent before.
func (s *URLSet) Add(rawURL string) bool {
	return !s.f.TestAndAddString(Normalize(rawURL))
}

// Has reports whether rawURL may be in the set.
func (s *URLSet) Has(rawURL string) bool {
	return s.f.TestString(Normalize(rawURL))
}

// Count returns the approximate number of URLs added.
func (s *URLSet) Count() uint {
	return uint(s.f.ApproximatedSize())
}

// Normalize maps equivalent spellings of a URL to one key: the fragment is
// dropped, scheme and host are lowercased and an empty path becomes "/".
// Unparsable input is returned without its fragment.
func Normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		before, _, _ := strings.Cut(rawURL, "#")
		return before
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Host != "" && u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
