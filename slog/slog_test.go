package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/mock"
	wslog "github.com/fwojciec/web2md/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		html, err := wslog.NewLoggingFetcher(inner, newLogger(&buf)).Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "msg=fetch")
		assert.Contains(t, out, "url=https://example.com/docs")
		assert.Contains(t, out, "bytes=20")
		assert.Contains(t, out, "duration=")
	})

	t.Run("logs failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("network error")
			},
		}

		_, err := wslog.NewLoggingFetcher(inner, newLogger(&buf)).Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), `err="network error"`)
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, wslog.NewLoggingFetcher(inner, newLogger(&bytes.Buffer{})).Close())
		assert.True(t, closed)
	})
}

func TestLoggingURLSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.URLSource{
		DiscoverFn: func(context.Context, string) ([]string, error) {
			return []string{"https://example.com/a", "https://example.com/b"}, nil
		},
	}

	urls, err := wslog.NewLoggingURLSource(inner, newLogger(&buf)).Discover(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, buf.String(), `msg="sitemap discovery"`)
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoggingConverter(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Converter{
			ConvertFn: func(p *web2md.Page, _ web2md.Options) (*web2md.Document, error) {
				return &web2md.Document{URL: p.URL, Markdown: "# Hi"}, nil
			},
		}

		doc, err := wslog.NewLoggingConverter(inner, newLogger(&buf)).Convert(
			&web2md.Page{URL: "https://example.com", HTML: "<h1>Hi</h1>"}, web2md.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, "# Hi", doc.Markdown)
		assert.Contains(t, buf.String(), "html_bytes=11")
		assert.Contains(t, buf.String(), "markdown_bytes=4")
	})

	t.Run("nil page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Converter{
			ConvertFn: func(*web2md.Page, web2md.Options) (*web2md.Document, error) {
				return nil, web2md.Errorf(web2md.ECONVERSION, "no page")
			},
		}

		_, err := wslog.NewLoggingConverter(inner, newLogger(&buf)).Convert(nil, web2md.Options{})

		assert.Equal(t, web2md.ECONVERSION, web2md.ErrorCode(err))
		assert.Contains(t, buf.String(), "level=WARN")
	})
}

func TestLoggingDownloadSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.DownloadSink{
		DownloadFn: func(context.Context, []byte, string) (string, error) { return "id-1", nil },
	}

	id, err := wslog.NewLoggingDownloadSink(inner, newLogger(&buf)).Download(context.Background(), []byte("# x"), "x.md")

	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Contains(t, buf.String(), "filename=x.md")
	assert.Contains(t, buf.String(), "id=id-1")
}
