package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title returns the trimmed text of the document's title element.
func Title(doc *goquery.Document) string {
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// Favicon returns the absolute URL of the page icon declared by a link
// element, or /favicon.ico on the page's host when none is declared.
// Returns an empty string when pageURL is not absolute.
func Favicon(doc *goquery.Document, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return ""
	}

	href := ""
	doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, rel := range strings.Fields(strings.ToLower(s.AttrOr("rel", ""))) {
			if rel == "icon" {
				href = s.AttrOr("href", "")
				return false
			}
		}
		return true
	})
	if href == "" {
		href = "/favicon.ico"
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
