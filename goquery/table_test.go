package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseTable(t *testing.T, rawHTML string) *gq.Selection {
	t.Helper()

	doc, err := gq.NewDocumentFromReader(strings.NewReader(rawHTML))
	require.NoError(t, err)
	table := doc.Find("table").First()
	require.Equal(t, 1, table.Length())
	return table
}

// unescapedPipes counts the pipes that delimit cells.
func unescapedPipes(line string) int {
	return strings.Count(line, "|") - strings.Count(line, `\|`)
}

func TestSerializeTable(t *testing.T) {
	t.Parallel()

	t.Run("pads short rows", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table><tr><td>A</td><td>B</td><td>C</td></tr><tr><td>1</td><td>2</td></tr></table>`)

		got := goquery.SerializeTable(table, nil)

		assert.Equal(t, "| A | B | C |\n| --- | --- | --- |\n| 1 | 2 |   |\n", got)
	})

	t.Run("header cells", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table>
			<thead><tr><th>Name</th><th>Value</th></tr></thead>
			<tbody><tr><td>a</td><td>1</td></tr><tr><td>b</td><td>2</td></tr></tbody>
		</table>`)

		got := goquery.SerializeTable(table, nil)

		assert.Equal(t, "| Name | Value |\n| --- | --- |\n| a | 1 |\n| b | 2 |\n", got)
	})

	t.Run("escapes pipes", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table><tr><td>a|b</td></tr></table>`)

		got := goquery.SerializeTable(table, nil)

		assert.Equal(t, "| a\\|b |\n| --- |\n", got)
	})

	t.Run("flattens whitespace in cells", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, "<table><tr><td>\n  multi\n  line <b>text</b>\n</td><td>   </td></tr></table>")

		got := goquery.SerializeTable(table, nil)

		assert.Equal(t, "| multi line text |   |\n| --- | --- |\n", got)
	})

	t.Run("skips rows without cells", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table><tr></tr><tr><td>a</td></tr></table>`)

		got := goquery.SerializeTable(table, nil)

		assert.Equal(t, "| a |\n| --- |\n", got)
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table></table>`)

		assert.Empty(t, goquery.SerializeTable(table, nil))
	})

	t.Run("does not expand spans", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table><tr><td colspan="2">wide</td></tr><tr><td>a</td><td>b</td></tr></table>`)

		got := goquery.SerializeTable(table, nil)

		assert.Equal(t, "| wide |   |\n| --- | --- |\n| a | b |\n", got)
	})

	t.Run("renders rich cells with rules", func(t *testing.T) {
		t.Parallel()

		table := parseTable(t, `<table><tr>
			<td><p>para</p><ul><li>x</li><li>y</li></ul></td>
			<td><div><strong>bold</strong></div></td>
			<td><strong>plain</strong></td>
		</tr></table>`)
		r := goquery.NewRenderer(nil, goquery.RenderContext{})

		got := goquery.SerializeTable(table, r)

		assert.Equal(t, "| para - x - y | **bold** | plain |\n| --- | --- | --- |\n", got)
	})

	t.Run("renders nested table cells once", func(t *testing.T) {
		t.Parallel()

		const depth = 24
		table := parseTable(t, strings.Repeat(`<table><tr><td><div>x</div>`, depth))
		var divs int
		rules := goquery.DefaultRules().Prepend(goquery.Rule{
			Name:   "countDivs",
			Filter: func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == atom.Div },
			Replacement: func(_ *goquery.Renderer, content string, _ *html.Node) string {
				divs++
				return "\n\n" + content + "\n\n"
			},
		})
		r := goquery.NewRenderer(rules, goquery.RenderContext{})

		got := r.Render(table.Get(0))

		assert.Equal(t, depth, divs)
		assert.True(t, strings.HasPrefix(got, "| x"), got)
	})

	t.Run("line and pipe counts", func(t *testing.T) {
		t.Parallel()

		tables := []string{
			`<table><tr><td>1</td></tr></table>`,
			`<table><tr><td>1</td><td>2</td></tr><tr><td>3</td></tr><tr><td>4</td><td>5</td><td>6</td><td>7</td></tr></table>`,
			`<table><tr><th>h|1</th><th>h2</th></tr><tr><td></td><td>a | b | c</td></tr></table>`,
			`<table><caption>cap</caption><tbody><tr><td><div>x</div><p>y|z</p></td></tr></tbody></table>`,
		}
		r := goquery.NewRenderer(nil, goquery.RenderContext{})

		for _, raw := range tables {
			table := parseTable(t, raw)
			rows := 0
			columns := 0
			table.Find("tr").Each(func(_ int, tr *gq.Selection) {
				if n := tr.Find("td, th").Length(); n > 0 {
					rows++
					columns = max(columns, n)
				}
			})

			got := goquery.SerializeTable(table, r)

			lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
			require.Len(t, lines, rows+1, raw)
			for _, line := range lines {
				assert.NotEmpty(t, line)
				assert.Equal(t, columns+1, unescapedPipes(line), "line %q of %s", line, raw)
			}
		}
	})
}

func TestConverter_TableOptions(t *testing.T) {
	t.Parallel()

	t.Run("strips links inside tables", func(t *testing.T) {
		t.Parallel()

		opts := web2md.DefaultOptions()
		opts.IncludeLinks = false

		md := convert(t, `<table><tr><td><a href="/a">alpha</a></td></tr></table>`, opts)

		assert.Equal(t, "| alpha |\n| --- |", md)
	})
}
