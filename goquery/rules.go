package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rule converts elements accepted by Filter into Markdown. Replacement
// receives the already rendered content of the element's children.
type Rule struct {
	Name        string
	Filter      func(n *html.Node) bool
	Replacement func(r *Renderer, content string, n *html.Node) string

	// SkipContent marks rules that read the element themselves. Children
	// are not rendered first and Replacement receives an empty content.
	SkipContent bool
}

// RuleSet is an ordered list of rules. The first rule whose filter accepts
// an element renders it; elements no rule accepts fall through to the
// default block or inline rendering. A RuleSet is never modified after
// construction, so it can be shared between conversions.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet returns a RuleSet trying rules in the given order.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: append([]Rule(nil), rules...)}
}

// Prepend returns a copy of s in which rules take precedence over the
// existing ones.
func (s *RuleSet) Prepend(rules ...Rule) *RuleSet {
	return NewRuleSet(append(append([]Rule(nil), rules...), s.rules...)...)
}

// Append returns a copy of s in which rules are tried after the existing
// ones.
func (s *RuleSet) Append(rules ...Rule) *RuleSet {
	return NewRuleSet(append(append([]Rule(nil), s.rules...), rules...)...)
}

// Names returns the rule names in precedence order.
func (s *RuleSet) Names() []string {
	names := make([]string, len(s.rules))
	for i, rule := range s.rules {
		names[i] = rule.Name
	}
	return names
}

func (s *RuleSet) match(n *html.Node) (Rule, bool) {
	for _, rule := range s.rules {
		if rule.Filter(n) {
			return rule, true
		}
	}
	return Rule{}, false
}

// DefaultRules returns the standard rule set. Table handling comes first so
// table structure is never rendered by the generic rules.
func DefaultRules() *RuleSet {
	return NewRuleSet(
		Rule{Name: "table", Filter: tagFilter(atom.Table), Replacement: replaceTable, SkipContent: true},
		Rule{Name: "tableSection", Filter: tagFilter(atom.Thead, atom.Tbody, atom.Tfoot), Replacement: passContent},
		Rule{Name: "tableRow", Filter: tagFilter(atom.Tr), Replacement: passContent},
		Rule{Name: "tableCell", Filter: tagFilter(atom.Td, atom.Th), Replacement: passContent},
		Rule{Name: "codeBlock", Filter: tagFilter(atom.Pre), Replacement: replaceCodeBlock, SkipContent: true},
		Rule{Name: "image", Filter: tagFilter(atom.Img), Replacement: replaceImage},
		Rule{Name: "heading", Filter: tagFilter(atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6), Replacement: replaceHeading},
		Rule{Name: "paragraph", Filter: tagFilter(atom.P), Replacement: replaceParagraph},
		Rule{Name: "blockquote", Filter: tagFilter(atom.Blockquote), Replacement: replaceBlockquote},
		Rule{Name: "list", Filter: tagFilter(atom.Ul, atom.Ol), Replacement: replaceList},
		Rule{Name: "listItem", Filter: tagFilter(atom.Li), Replacement: replaceListItem},
		Rule{Name: "emphasis", Filter: tagFilter(atom.Em, atom.I), Replacement: wrapWith("_")},
		Rule{Name: "strong", Filter: tagFilter(atom.Strong, atom.B), Replacement: wrapWith("**")},
		Rule{Name: "inlineCode", Filter: tagFilter(atom.Code), Replacement: replaceInlineCode},
		Rule{Name: "link", Filter: isLink, Replacement: replaceLink},
		Rule{Name: "lineBreak", Filter: tagFilter(atom.Br), Replacement: replaceLineBreak},
		Rule{Name: "horizontalRule", Filter: tagFilter(atom.Hr), Replacement: replaceHorizontalRule},
		Rule{Name: "ignored", Filter: tagFilter(atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head), Replacement: dropContent, SkipContent: true},
	)
}

func tagFilter(tags ...atom.Atom) func(*html.Node) bool {
	set := atomSet(tags...)
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && set[n.DataAtom]
	}
}

func passContent(_ *Renderer, content string, _ *html.Node) string {
	return content
}

func dropContent(*Renderer, string, *html.Node) string {
	return ""
}

func replaceTable(r *Renderer, _ string, n *html.Node) string {
	return "\n\n" + SerializeTable(selectionOf(n), r) + "\n\n"
}

var codeLanguage = regexp.MustCompile(`language-(\w+)`)

func replaceCodeBlock(_ *Renderer, _ string, n *html.Node) string {
	pre := selectionOf(n)
	var lang string
	if code := pre.Find("code").First(); code.Length() > 0 {
		if m := codeLanguage.FindStringSubmatch(code.AttrOr("class", "")); m != nil {
			lang = m[1]
		}
	}
	body := strings.TrimRight(preText(n), "\n")
	fence := codeFence(body)
	return "\n" + fence + lang + "\n" + body + "\n" + fence + "\n\n"
}

// preText returns the text of a preformatted subtree with line breaks
// turned into newlines.
func preText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// codeFence returns a backtick fence one longer than the longest backtick
// run in body, and never shorter than three.
func codeFence(body string) string {
	longest, run := 0, 0
	for _, c := range body {
		if c == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

func replaceImage(r *Renderer, _ string, n *html.Node) string {
	src := attr(n, "src")
	if src == "" {
		return ""
	}
	return "![" + attr(n, "alt") + "](" + r.ResolveURL(src) + titlePart(n) + ")"
}

func replaceHeading(_ *Renderer, content string, n *html.Node) string {
	level := int(n.Data[1] - '0')
	text := strings.Join(strings.Fields(content), " ")
	return "\n\n" + strings.Repeat("#", level) + " " + text + "\n\n"
}

func replaceParagraph(_ *Renderer, content string, _ *html.Node) string {
	return "\n\n" + trimBlock(content) + "\n\n"
}

func replaceBlockquote(_ *Renderer, content string, _ *html.Node) string {
	lines := strings.Split(trimBlock(content), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

func replaceList(_ *Renderer, content string, n *html.Node) string {
	body := trimBlock(content)
	if p := n.Parent; p != nil && p.Type == html.ElementNode && p.DataAtom == atom.Li {
		return "\n" + body + "\n"
	}
	return "\n\n" + body + "\n\n"
}

func replaceListItem(_ *Renderer, content string, n *html.Node) string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = "    " + lines[i]
		}
	}
	return listMarker(n) + strings.Join(lines, "\n") + "\n"
}

// listMarker returns "- " for unordered items and "N. " for ordered ones,
// honoring the list's start attribute.
func listMarker(n *html.Node) string {
	p := n.Parent
	if p == nil || p.DataAtom != atom.Ol {
		return "- "
	}
	start := 1
	if v, err := strconv.Atoi(attr(p, "start")); err == nil {
		start = v
	}
	index := 0
	for s := p.FirstChild; s != nil && s != n; s = s.NextSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.Li {
			index++
		}
	}
	return strconv.Itoa(start+index) + ". "
}

func wrapWith(delim string) func(*Renderer, string, *html.Node) string {
	return func(_ *Renderer, content string, _ *html.Node) string {
		return wrapInline(content, delim, delim)
	}
}

// wrapInline surrounds content with open and closing, keeping surrounding
// whitespace outside the delimiters.
func wrapInline(content, open, closing string) string {
	core := strings.TrimSpace(content)
	if core == "" {
		return content
	}
	lead := content[:strings.Index(content, core)]
	trail := content[len(lead)+len(core):]
	return lead + open + core + closing + trail
}

func replaceInlineCode(_ *Renderer, content string, n *html.Node) string {
	if insidePre(n) {
		return content
	}
	if strings.Contains(content, "`") {
		return wrapInline(content, "`` ", " ``")
	}
	return wrapInline(content, "`", "`")
}

func isLink(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.A && attr(n, "href") != ""
}

func replaceLink(r *Renderer, content string, n *html.Node) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	return wrapInline(content, "[", "]("+r.ResolveURL(attr(n, "href"))+titlePart(n)+")")
}

func titlePart(n *html.Node) string {
	title := attr(n, "title")
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

func replaceLineBreak(*Renderer, string, *html.Node) string {
	return "  \n"
}

func replaceHorizontalRule(*Renderer, string, *html.Node) string {
	return "\n\n---\n\n"
}
