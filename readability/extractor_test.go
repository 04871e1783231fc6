package readability_test

import (
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()

	_, err := ext.Extract(&web2md.Page{URL: "https://example.com"})
	assert.Equal(t, web2md.EINVALID, web2md.ErrorCode(err))

	_, err = ext.Extract(nil)
	assert.Equal(t, web2md.EINVALID, web2md.ErrorCode(err))
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h1>Main Heading</h1>
<p>This is the important article paragraph text that must be kept in the output.</p>
<p>Here is a data table with enough surrounding text to count as content:</p>
<table>
<tr><th>Name</th><th>Value</th></tr>
<tr><td>Foo</td><td>123</td></tr>
</table>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(&web2md.Page{URL: "https://example.com/post", HTML: html})

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
	assert.Contains(t, result.ContentHTML, "important article paragraph text")
	assert.Contains(t, result.ContentHTML, "<table")
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}
