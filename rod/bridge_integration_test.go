//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/goquery"
	"github.com/fwojciec/web2md/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scriptedPage = `<!DOCTYPE html>
<html>
<head><title>Rendered</title><link rel="icon" href="/icon.png"></head>
<body>
<main><p id="content">Loading...</p></main>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(scriptedPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBridge_ConvertsRenderedTab(t *testing.T) {
	t.Parallel()

	srv := newPageServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	defer manager.Close()
	bridge := rod.NewBridge(manager, goquery.NewConverter())
	defer bridge.Close()

	tab, err := bridge.Open(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Rendered", tab.Title)
	assert.Equal(t, srv.URL+"/icon.png", tab.FaviconURL)

	active, err := bridge.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, tab.ID, active.ID)
	assert.True(t, bridge.Ready(ctx, tab.ID))
	require.NoError(t, bridge.Ensure(ctx, tab.ID))

	var results []web2md.Result
	for res := range bridge.Convert(ctx, tab.ID, web2md.DefaultOptions()) {
		results = append(results, res)
	}

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, tab.ID, results[0].TabID)
	assert.Equal(t, "# Rendered\n\nJavaScript Rendered", results[0].Document.Markdown)
}

func TestBridge_UnknownTab(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	defer manager.Close()
	bridge := rod.NewBridge(manager, goquery.NewConverter())

	_, err = bridge.ActiveTab(ctx)
	assert.Equal(t, web2md.ENOTFOUND, web2md.ErrorCode(err))
	assert.False(t, bridge.Ready(ctx, "missing"))

	res := <-bridge.Convert(ctx, "missing", web2md.DefaultOptions())
	assert.Equal(t, web2md.ENOTFOUND, web2md.ErrorCode(res.Err))
	assert.Nil(t, res.Document)
}

func TestFetcher_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := newPageServer(t)
	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")
}

func TestFetcher_ContextCancellation(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, "http://127.0.0.1:1")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBrowserManager_Recycles(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	manager.PageDone()
	assert.Same(t, first, manager.Browser())
	manager.PageDone()

	assert.NotSame(t, first, manager.Browser())
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())
	assert.Zero(t, manager.LauncherPID())
}
