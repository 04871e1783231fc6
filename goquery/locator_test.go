package goquery_test

import (
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "confluence wiki content wins",
			html: `<main>main</main><div id="main-content">mc</div><div class="wiki-content">wiki</div>`,
			want: "wiki",
		},
		{
			name: "main before article",
			html: `<article>art</article><main>main</main>`,
			want: "main",
		},
		{
			name: "article before generic content",
			html: `<div class="content">generic</div><article>art</article>`,
			want: "art",
		},
		{
			name: "falls back to body",
			html: `<div>only body</div>`,
			want: "only body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parseDoc(t, tt.html)

			root, err := goquery.Locate(doc)

			require.NoError(t, err)
			assert.Equal(t, tt.want, root.Text())
		})
	}

	t.Run("returns a detached copy", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<main><p>keep</p><script>x</script></main>`)

		root, err := goquery.Locate(doc)
		require.NoError(t, err)
		goquery.RemoveNoise(root)

		assert.Equal(t, 0, root.Find("script").Length())
		assert.Equal(t, 1, doc.Find("main script").Length())
	})
}

func TestLocateSelector(t *testing.T) {
	t.Parallel()

	t.Run("finds first match", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<div class="x">first</div><div class="x">second</div>`)

		root, err := goquery.LocateSelector(doc, ".x")

		require.NoError(t, err)
		assert.Equal(t, "first", root.Text())
	})

	t.Run("invalid selector", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<p>x</p>`)

		_, err := goquery.LocateSelector(doc, "p[")

		assert.Equal(t, web2md.ECONTENTNOTFOUND, web2md.ErrorCode(err))
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<p>x</p>`)

		_, err := goquery.LocateSelector(doc, "#nothing")

		assert.Equal(t, web2md.ECONTENTNOTFOUND, web2md.ErrorCode(err))
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A Title", goquery.Title(parseDoc(t, "<title>\n A   Title\n</title>")))
	assert.Empty(t, goquery.Title(parseDoc(t, "<p>no title</p>")))
}

func TestFavicon(t *testing.T) {
	t.Parallel()

	t.Run("declared icon", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<head><link rel="stylesheet" href="/s.css"><link rel="Shortcut Icon" href="/static/icon.png"></head>`)

		assert.Equal(t, "https://example.com/static/icon.png", goquery.Favicon(doc, pageURL))
	})

	t.Run("default location", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<p>x</p>`)

		assert.Equal(t, "https://example.com/favicon.ico", goquery.Favicon(doc, pageURL))
	})

	t.Run("relative page URL", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.Favicon(parseDoc(t, `<p>x</p>`), "/local"))
	})
}
