package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// NoiseSelectors match page chrome that is dropped before conversion:
// scripts, ads, navigation, comments, popups and Confluence page furniture.
var NoiseSelectors = []string{
	"script",
	"style",
	".advertisement",
	".ads",
	".menu",
	".navigation",
	".comments",
	".comment",
	".social-share",
	".share-buttons",
	".related-posts",
	".popup",
	".modal",
	".cookie-notice",
	`iframe[src*="ads"]`,
	`iframe[src*="doubleclick"]`,
	".toc-macro",
	"#comments-section",
	".page-metadata",
	".labels-section",
	".space-tools-section",
}

var noiseMatchers = CompileSelectors(NoiseSelectors)

// CompileSelectors compiles each selector independently. Selectors that do
// not compile are left out, so one bad entry never disables the others.
func CompileSelectors(selectors []string) []goquery.Matcher {
	matchers := make([]goquery.Matcher, 0, len(selectors))
	for _, s := range selectors {
		m, err := cascadia.Compile(s)
		if err != nil {
			continue
		}
		matchers = append(matchers, m)
	}
	return matchers
}

// RemoveNoise deletes the descendants of root matching NoiseSelectors and
// returns how many elements were removed. Elements that contain a table are
// kept. Running it twice removes nothing the second time.
func RemoveNoise(root *goquery.Selection) int {
	return RemoveMatching(root, noiseMatchers)
}

// RemoveMatching deletes the descendants of root accepted by any matcher,
// except elements containing a table.
func RemoveMatching(root *goquery.Selection, matchers []goquery.Matcher) int {
	removed := 0
	for _, m := range matchers {
		root.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
			if s.Find("table").Length() > 0 {
				return
			}
			s.Remove()
			removed++
		})
	}
	return removed
}

// StripImages deletes every img below root and returns the count.
func StripImages(root *goquery.Selection) int {
	images := root.Find("img")
	images.Remove()
	return images.Length()
}

// StripLinks replaces every anchor below root with a text node holding the
// anchor's text, and returns the count.
func StripLinks(root *goquery.Selection) int {
	links := root.Find("a")
	links.Each(func(_ int, a *goquery.Selection) {
		a.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: a.Text()})
	})
	return links.Length()
}
