package web2md

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DefaultPreviewLength is the number of characters shown by Preview when no
// limit is given.
const DefaultPreviewLength = 500

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	headingLine    = regexp.MustCompile(`(?m)^(#{1,6})[ \t]*(\S.*)$`)
	bulletMarker   = regexp.MustCompile(`(?m)^([ \t]*)[-*+][ \t]+`)
	atxHeading     = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+)$`)
)

// PostProcess normalizes generated Markdown. Runs of three or more newlines
// collapse to a single blank line, heading markers are followed by exactly
// one space and bullet markers are rewritten to "- ". Applying PostProcess
// to its own output returns the output unchanged.
func PostProcess(markdown string) string {
	s := excessNewlines.ReplaceAllString(markdown, "\n\n")
	s = strings.TrimSpace(s)
	s = headingLine.ReplaceAllString(s, "$1 $2")
	s = bulletMarker.ReplaceAllString(s, "$1- ")
	return strings.Trim(s, "\n")
}

// Preview returns at most limit characters of markdown, followed by "..."
// when the text was cut. A non-positive limit means DefaultPreviewLength.
func Preview(markdown string, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLength
	}
	r := []rune(markdown)
	if len(r) <= limit {
		return markdown
	}
	return string(r[:limit]) + "..."
}

// Heading is an ATX heading found in a Markdown document.
type Heading struct {
	Level  int    `json:"level" yaml:"level"`
	Text   string `json:"text" yaml:"text"`
	Anchor string `json:"anchor" yaml:"anchor"`
}

// Outline returns the headings of markdown in document order. Lines inside
// fenced code blocks are ignored. Anchors are unique within the outline;
// repeated anchors get a numeric suffix.
func Outline(markdown string) []Heading {
	if markdown == "" {
		return nil
	}

	matches := atxHeading.FindAllStringSubmatch(stripFencedBlocks(markdown), -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]Heading, 0, len(matches))
	seen := make(map[string]int)
	for _, m := range matches {
		text := strings.TrimSpace(m[2])
		anchor := slugify(text)
		if n, ok := seen[anchor]; ok {
			seen[anchor] = n + 1
			anchor += "-" + strconv.Itoa(n)
		} else {
			seen[anchor] = 1
		}
		headings = append(headings, Heading{Level: len(m[1]), Text: text, Anchor: anchor})
	}
	return headings
}

// stripFencedBlocks drops fenced code blocks from markdown. A block closes
// on a backtick fence at least as long as the one that opened it.
func stripFencedBlocks(markdown string) string {
	lines := strings.Split(markdown, "\n")
	kept := lines[:0]
	open := 0
	for _, line := range lines {
		fence := len(line) - len(strings.TrimLeft(line, "`"))
		switch {
		case open == 0 && fence >= 3:
			open = fence
		case open > 0 && fence >= open && strings.TrimSpace(line[fence:]) == "":
			open = 0
		case open == 0:
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// slugify lowercases text, keeps letters and digits and joins words with
// single dashes.
func slugify(text string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			dash = false
		case unicode.IsSpace(r) || r == '-':
			if !dash && sb.Len() > 0 {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// HTMLRenderer renders Markdown to HTML for previews.
type HTMLRenderer interface {
	// RenderHTML returns the HTML fragment for markdown.
	RenderHTML(markdown string) (string, error)

	// RenderPage returns a standalone HTML document titled title.
	RenderPage(title, markdown string) (string, error)
}
