package goquery_test

import (
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/goquery"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "headings",
			html: `<h1>Title</h1><h2>  Sub
				title </h2><h6>Six</h6>`,
			want: "# Title\n\n## Sub title\n\n###### Six",
		},
		{
			name: "paragraphs",
			html: "<p>\n  first\n</p>\n<p>second</p>",
			want: "first\n\nsecond",
		},
		{
			name: "unordered list",
			html: "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>",
			want: "- one\n- two",
		},
		{
			name: "ordered list with start",
			html: `<ol start="3"><li>a</li><li>b</li></ol>`,
			want: "3. a\n4. b",
		},
		{
			name: "nested list",
			html: `<ul><li>parent<ul><li>child</li></ul></li></ul>`,
			want: "- parent\n    - child",
		},
		{
			name: "emphasis and strong",
			html: `<p>a <em>b</em> <strong>c</strong> <i> d </i></p>`,
			want: "a _b_ **c** _d_",
		},
		{
			name: "inline code",
			html: `<p>use <code>go test</code></p>`,
			want: "use `go test`",
		},
		{
			name: "inline code with backtick",
			html: "<p><code>a`b</code></p>",
			want: "`` a`b ``",
		},
		{
			name: "code block without language",
			html: "<pre>line 1\n  line 2\n</pre>",
			want: "```\nline 1\n  line 2\n```",
		},
		{
			name: "code block keeps markup as text",
			html: `<pre><code class="hljs language-go">if a &lt; b { <span>x</span> }</code></pre>`,
			want: "```go\nif a < b { x }\n```",
		},
		{
			name: "code block line breaks",
			html: `<pre>a<br>b</pre>`,
			want: "```\na\nb\n```",
		},
		{
			name: "code block fence longer than body backticks",
			html: "<pre>```go\nx := 1\n```</pre>",
			want: "````\n```go\nx := 1\n```\n````",
		},
		{
			name: "blockquote",
			html: `<blockquote><p>one</p><p>two</p></blockquote>`,
			want: "> one\n>\n> two",
		},
		{
			name: "line break",
			html: `<p>line1<br>line2</p>`,
			want: "line1  \nline2",
		},
		{
			name: "horizontal rule",
			html: `<p>a</p><hr><p>b</p>`,
			want: "a\n\n---\n\nb",
		},
		{
			name: "link with title",
			html: `<p><a href="https://x.org/" title="X">x</a></p>`,
			want: `[x](https://x.org/ "X")`,
		},
		{
			name: "relative link resolved",
			html: `<p><a href="../guide#top">guide</a></p>`,
			want: "[guide](https://example.com/guide#top)",
		},
		{
			name: "anchor without href",
			html: `<p><a name="here">here</a></p>`,
			want: "here",
		},
		{
			name: "image with title",
			html: `<p><img src="img/a.png" alt="A" title="T"></p>`,
			want: `![A](https://example.com/docs/img/a.png "T")`,
		},
		{
			name: "image without src",
			html: `<p>a<img alt="none">b</p>`,
			want: "ab",
		},
		{
			name: "blank elements are dropped",
			html: `<div>   </div><p>text</p><span> </span>`,
			want: "text",
		},
		{
			name: "unknown inline elements keep content",
			html: `<p><span>a</span> <mark>b</mark></p>`,
			want: "a b",
		},
		{
			name: "ignored elements",
			html: `<noscript>enable js</noscript><p>ok</p><template><p>tpl</p></template>`,
			want: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, convert(t, tt.html, web2md.DefaultOptions()))
		})
	}
}

func TestRuleSet(t *testing.T) {
	t.Parallel()

	marker := goquery.Rule{
		Name:   "marker",
		Filter: func(n *html.Node) bool { return n.DataAtom == atom.Table },
		Replacement: func(*goquery.Renderer, string, *html.Node) string {
			return "\n\nTABLE\n\n"
		},
	}

	t.Run("prepended rules take precedence", func(t *testing.T) {
		t.Parallel()

		rules := goquery.DefaultRules().Prepend(marker)

		assert.Equal(t, "marker", rules.Names()[0])
		md := convert(t, `<table><tr><td>x</td></tr></table>`, web2md.DefaultOptions(), goquery.WithRules(rules))
		assert.Equal(t, "TABLE", md)
	})

	t.Run("appended rules lose to defaults", func(t *testing.T) {
		t.Parallel()

		rules := goquery.DefaultRules().Append(marker)

		names := rules.Names()
		assert.Equal(t, "marker", names[len(names)-1])
		md := convert(t, `<table><tr><td>x</td></tr></table>`, web2md.DefaultOptions(), goquery.WithRules(rules))
		assert.Equal(t, "| x |\n| --- |", md)
	})

	t.Run("derived sets leave the original untouched", func(t *testing.T) {
		t.Parallel()

		base := goquery.DefaultRules()
		_ = base.Prepend(marker)

		assert.Equal(t, "table", base.Names()[0])
	})

	t.Run("default order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{
			"table", "tableSection", "tableRow", "tableCell", "codeBlock", "image",
			"heading", "paragraph", "blockquote", "list", "listItem", "emphasis",
			"strong", "inlineCode", "link", "lineBreak", "horizontalRule", "ignored",
		}, goquery.DefaultRules().Names())
	})

	t.Run("empty tables reach the table rule", func(t *testing.T) {
		t.Parallel()

		rules := goquery.DefaultRules().Prepend(marker)

		md := convert(t, `<table></table>`, web2md.DefaultOptions(), goquery.WithRules(rules))

		assert.Equal(t, "TABLE", md)
	})

	t.Run("empty tables are elided when blank tables are allowed", func(t *testing.T) {
		t.Parallel()

		rules := goquery.DefaultRules().Prepend(marker)

		md := convert(t, `<table></table>`, web2md.DefaultOptions(),
			goquery.WithRules(rules), goquery.WithTablesNeverBlank(false))

		assert.Empty(t, md)
	})
}

func TestRenderer_ResolveURL(t *testing.T) {
	t.Parallel()

	t.Run("without base URL", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(nil, goquery.RenderContext{})

		assert.Equal(t, "/a.png", r.ResolveURL(" /a.png "))
	})
}
