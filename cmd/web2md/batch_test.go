package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/batch"
	main "github.com/fwojciec/web2md/cmd/web2md"
	"github.com/fwojciec/web2md/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapSource(urls ...string) *mock.URLSource {
	return &mock.URLSource{
		DiscoverFn: func(context.Context, string) ([]string, error) {
			return urls, nil
		},
	}
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists filtered URLs", func(t *testing.T) {
		t.Parallel()

		filter, err := web2md.CompileURLFilter(nil, []string{`/blog/`})
		require.NoError(t, err)

		deps, stdout, _ := newDeps("")
		deps.Runner = &batch.Runner{
			URLs:   sitemapSource("https://e.com/docs/a", "https://e.com/blog/b", "https://e.com/docs/c"),
			Filter: filter,
		}

		cmd := &main.BatchCmd{URL: "https://e.com/", List: true, Max: 5}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "https://e.com/docs/a\nhttps://e.com/docs/c\n", stdout.String())
	})

	t.Run("converts and publishes pages", func(t *testing.T) {
		t.Parallel()

		var saved []string
		committed := false
		deps, stdout, stderr := newDeps("")
		deps.OutputDir = "/out/e.com"
		deps.Runner = &batch.Runner{
			URLs: sitemapSource("https://e.com/a", "https://e.com/b", "https://e.com/broken"),
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://e.com/broken" {
						return "", web2md.Errorf(web2md.ENOTFOUND, "HTTP 404")
					}
					return "<p>" + url + "</p>", nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(p *web2md.Page, _ web2md.Options) (*web2md.Document, error) {
					return &web2md.Document{Markdown: p.HTML}, nil
				},
			},
			Store: &mock.PageStore{
				SaveFn: func(_ context.Context, doc *web2md.Document) error {
					saved = append(saved, doc.URL)
					return nil
				},
				CommitFn: func() error {
					committed = true
					return nil
				},
			},
			Concurrency: 1,
		}

		cmd := &main.BatchCmd{URL: "https://e.com/"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://e.com/a", "https://e.com/b"}, saved)
		assert.True(t, committed)
		assert.Contains(t, stdout.String(), "Saved 2 pages")
		assert.Contains(t, stdout.String(), "/out/e.com")
		assert.Contains(t, stdout.String(), "1 pages failed")
		assert.Contains(t, stderr.String(), "skip https://e.com/broken: HTTP 404")
	})

	t.Run("reports discovery errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("")
		deps.Runner = &batch.Runner{
			URLs: &mock.URLSource{
				DiscoverFn: func(context.Context, string) ([]string, error) {
					return nil, errors.New("connection refused")
				},
			},
		}

		cmd := &main.BatchCmd{URL: "https://e.com/"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
