package main_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/web2md/cmd/web2md"
	"github.com/fwojciec/web2md/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("truncates text preview", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(strings.Repeat("a", 20))

		cmd := &main.PreviewCmd{File: "-", Limit: 5}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "aaaaa...\n", stdout.String())
	})

	t.Run("renders HTML fragment", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("# Title\n\n| a | b |\n| --- | --- |\n| 1 | 2 |")
		deps.Renderer = goldmark.NewRenderer()

		cmd := &main.PreviewCmd{File: "-", HTML: true}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, `<h1 id="title">Title</h1>`)
		assert.Contains(t, out, "<table>")
		assert.NotContains(t, out, "<html")
	})

	t.Run("renders standalone page titled by the first heading", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("## Intro\n\n# Main Title\n\ntext"), 0o644))

		deps, stdout, _ := newDeps("")
		deps.Renderer = goldmark.NewRenderer()

		cmd := &main.PreviewCmd{File: path, HTML: true, Page: true}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "<title>Main Title</title>")
		assert.Contains(t, out, "<p>text</p>")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("")

		cmd := &main.PreviewCmd{File: filepath.Join(t.TempDir(), "none.md")}
		require.Error(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "error: reading")
	})
}
