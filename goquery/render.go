package goquery

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderContext holds the per-conversion settings visible to rules.
type RenderContext struct {
	// BaseURL resolves relative link and image references. May be nil.
	BaseURL *url.URL

	// TablesNeverBlank keeps table elements out of blank-node elision so
	// the table rule always sees them, even when they hold no text.
	TablesNeverBlank bool
}

// Renderer walks an HTML tree and produces Markdown with a RuleSet.
// A Renderer is built per conversion and is not safe for concurrent use.
type Renderer struct {
	rules *RuleSet
	ctx   RenderContext

	// cells caches rendered table cells. Rows of a nested table are also
	// rows of every enclosing table, so a cell is serialized once per
	// ancestor table.
	cells map[*html.Node]string
}

// NewRenderer returns a Renderer for rules. A nil rules uses DefaultRules.
func NewRenderer(rules *RuleSet, ctx RenderContext) *Renderer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Renderer{rules: rules, ctx: ctx, cells: make(map[*html.Node]string)}
}

// Context returns the render context.
func (r *Renderer) Context() RenderContext {
	return r.ctx
}

// Render converts n and its subtree to Markdown. The result is not
// post-processed; leading and trailing newlines are removed.
func (r *Renderer) Render(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.Trim(r.render(n), "\n")
}

// RenderChildren converts the children of n, without applying any rule to n
// itself.
func (r *Renderer) RenderChildren(n *html.Node) string {
	var out string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = join(out, r.render(c))
	}
	return out
}

// ResolveURL resolves ref against the base URL. References that cannot be
// parsed are returned unchanged.
func (r *Renderer) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if r.ctx.BaseURL == nil || ref == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return r.ctx.BaseURL.ResolveReference(u).String()
}

func (r *Renderer) render(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		if insidePre(n) {
			return n.Data
		}
		return collapseSpace(n.Data)
	case html.DocumentNode:
		return r.RenderChildren(n)
	case html.ElementNode:
		if r.isBlank(n) {
			if isBlock(n) {
				return "\n\n"
			}
			return ""
		}
		rule, ok := r.rules.match(n)
		if ok && rule.SkipContent {
			return rule.Replacement(r, "", n)
		}
		content := r.RenderChildren(n)
		if ok {
			return rule.Replacement(r, content, n)
		}
		if isBlock(n) {
			return "\n\n" + trimBlock(content) + "\n\n"
		}
		return content
	}
	return ""
}

// isBlank reports whether n has no text and nothing that renders without
// text, such as an image or a table cell.
func (r *Renderer) isBlank(n *html.Node) bool {
	if n.DataAtom == atom.Table && r.ctx.TablesNeverBlank {
		return false
	}
	if isVoid(n) || meaningfulWhenBlank[n.DataAtom] {
		return false
	}
	if strings.TrimSpace(textContent(n)) != "" {
		return false
	}
	return !hasDescendant(n, func(d *html.Node) bool {
		return isVoid(d) || meaningfulWhenBlank[d.DataAtom] ||
			(d.DataAtom == atom.Table && r.ctx.TablesNeverBlank)
	})
}

// join concatenates two rendered fragments. Newlines at the seam are merged
// to at most one blank line and spaces next to the seam are dropped.
func join(output, addition string) string {
	left := strings.TrimRight(output, "\n")
	right := strings.TrimLeft(addition, "\n")
	trailing := len(output) - len(left)
	leading := len(addition) - len(right)

	sep := min(max(trailing, leading), 2)
	if sep == 0 {
		if strings.HasSuffix(left, " ") && strings.HasPrefix(right, " ") {
			right = right[1:]
		}
		return left + right
	}
	if leading > 0 {
		left = strings.TrimRight(left, " \t")
	}
	right = strings.TrimLeft(right, " \t")
	return left + strings.Repeat("\n", sep) + right
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, c := range s {
		switch c {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
				space = true
			}
		default:
			sb.WriteRune(c)
			space = false
		}
	}
	return sb.String()
}

func trimBlock(s string) string {
	return strings.Trim(s, " \t\n")
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			} else {
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

func hasDescendant(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (fn(c) || hasDescendant(c, fn)) {
			return true
		}
	}
	return false
}

func insidePre(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Pre {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isVoid(n *html.Node) bool {
	return n.Type == html.ElementNode && voidElements[n.DataAtom]
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockElements[n.DataAtom]
}

var voidElements = atomSet(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr,
)

var meaningfulWhenBlank = atomSet(
	atom.A, atom.Th, atom.Td, atom.Iframe, atom.Script, atom.Audio, atom.Video,
)

var blockElements = atomSet(
	atom.Address, atom.Article, atom.Aside, atom.Audio, atom.Blockquote, atom.Body,
	atom.Canvas, atom.Center, atom.Dd, atom.Dir, atom.Div, atom.Dl, atom.Dt,
	atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer, atom.Form,
	atom.Frameset, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
	atom.Header, atom.Hgroup, atom.Hr, atom.Html, atom.Li, atom.Main, atom.Menu,
	atom.Nav, atom.Noframes, atom.Noscript, atom.Ol, atom.Output, atom.P,
	atom.Pre, atom.Section, atom.Table, atom.Tbody, atom.Td, atom.Tfoot,
	atom.Th, atom.Thead, atom.Tr, atom.Ul,
)

func atomSet(atoms ...atom.Atom) map[atom.Atom]bool {
	m := make(map[atom.Atom]bool, len(atoms))
	for _, a := range atoms {
		m[a] = true
	}
	return m
}
