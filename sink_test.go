package web2md_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain title", input: "Getting Started", want: "getting-started"},
		{name: "invalid characters", input: `a<b>c:d"e/f\g|h?i*j`, want: "abcdefghij"},
		{name: "whitespace runs", input: "one  \t two\nthree", want: "one-two-three"},
		{name: "leading and trailing dashes", input: "  -Title-  ", want: "title"},
		{name: "only invalid characters", input: `<>:"/\|?*`, want: ""},
		{name: "unicode is kept", input: "网页 标题", want: "网页-标题"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, web2md.SanitizeFilename(tt.input))
		})
	}

	t.Run("truncates to 100 characters", func(t *testing.T) {
		t.Parallel()

		got := web2md.SanitizeFilename(strings.Repeat("a", 150))

		assert.Len(t, got, 100)
	})

	t.Run("truncation happens before trimming dashes", func(t *testing.T) {
		t.Parallel()

		got := web2md.SanitizeFilename(strings.Repeat("a", 99) + " b")

		assert.Equal(t, strings.Repeat("a", 99), got)
	})
}

func TestMarkdownFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "my-page.md", web2md.MarkdownFilename("My Page"))
	assert.Equal(t, "webpage.md", web2md.MarkdownFilename(""))
	assert.Equal(t, "webpage.md", web2md.MarkdownFilename("???"))
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		doc := &web2md.Document{Markdown: "# x"}

		assert.Equal(t, web2md.EINVALID, web2md.ErrorCode(doc.Validate()))
	})

	t.Run("requires markdown", func(t *testing.T) {
		t.Parallel()

		doc := &web2md.Document{URL: "https://example.com"}

		assert.Equal(t, web2md.EINVALID, web2md.ErrorCode(doc.Validate()))
	})

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		doc := &web2md.Document{URL: "https://example.com", Markdown: "# x", Title: "Hello World"}

		assert.NoError(t, doc.Validate())
		assert.Equal(t, "hello-world.md", doc.Filename())
	})
}
