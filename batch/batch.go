// Package batch converts every page of a site: it discovers page URLs from
// the site's sitemaps, or by following links when there are none, fetches
// and converts each page and publishes the documents together.
package batch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/web2md"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency is the number of pages fetched at once.
	DefaultConcurrency = 10

	// frontierExpectedURLs sizes the Bloom filter of a link-following run.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxWalkPages stops link following on sites without a sitemap.
	maxWalkPages = 1000
)

// Runner converts the pages of a site. URLs, Fetcher, Converter and Store
// are required; the remaining collaborators are optional.
type Runner struct {
	URLs      web2md.URLSource
	Fetcher   web2md.Fetcher
	Converter web2md.Converter
	Store     web2md.PageStore

	// Documents records every saved page in the conversion history.
	Documents web2md.DocumentService
	// Links enables link following when the site publishes no sitemap.
	Links web2md.LinkExtractor
	// RateLimiter spaces out requests per host.
	RateLimiter web2md.DomainLimiter

	Filter      *web2md.URLFilter
	Options     web2md.Options
	Concurrency int
	// MaxPages caps the number of pages converted. Zero means no cap.
	MaxPages    int
	RetryDelays []time.Duration
	OnRetry     RetryFunc
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved      int
	Failed     int
	Duplicates int
	Bytes      int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of converting a single URL.
type pageResult struct {
	position int
	url      string
	doc      *web2md.Document
	err      error
}

// Run converts the site at siteURL. Pages that fail are counted and
// skipped; pages whose Markdown repeats an earlier page are dropped as
// duplicates. The store is committed when at least one page was saved and
// aborted otherwise.
func (r *Runner) Run(ctx context.Context, siteURL string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	urls, err := r.URLs.Discover(ctx, siteURL)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	urls = r.Filter.Apply(urls)
	if r.MaxPages > 0 && len(urls) > r.MaxPages {
		urls = urls[:r.MaxPages]
	}

	var results []pageResult
	switch {
	case len(urls) > 0:
		results = r.convertAll(ctx, urls, progress)
	case r.Links != nil:
		results, err = r.walk(ctx, siteURL, progress)
		if err != nil {
			return nil, err
		}
	}

	res, err := r.save(ctx, results)
	if err != nil {
		return nil, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: len(results), Total: len(results)})
	return res, nil
}

// convertAll converts urls concurrently and returns results in input order.
func (r *Runner) convertAll(ctx context.Context, urls []string, progress ProgressFunc) []pageResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- r.convertURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]pageResult, total)
	for res := range resultCh {
		n := int(completed.Add(1))
		results[res.position] = res
		report(progress, res, n, total)
	}
	return results
}

// walk follows same-site links from siteURL, one page at a time, staying
// below the path of siteURL.
func (r *Runner) walk(ctx context.Context, siteURL string, progress ProgressFunc) ([]pageResult, error) {
	root, err := url.Parse(siteURL)
	if err != nil || !root.IsAbs() {
		return nil, web2md.Errorf(web2md.EINVALID, "invalid site URL: %q", siteURL)
	}
	limit := maxWalkPages
	if r.MaxPages > 0 {
		limit = min(limit, r.MaxPages)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(siteURL)
	progress(ProgressEvent{Type: ProgressStarted})

	var results []pageResult
	for len(results) < limit && ctx.Err() == nil {
		next, ok := frontier.Pop()
		if !ok {
			break
		}

		html, err := r.fetch(ctx, next)
		res := pageResult{position: len(results), url: next, err: err}
		if err == nil {
			if links, err := r.Links.ExtractLinks(html, next); err == nil {
				for _, link := range links {
					if inScope(root, link) && r.Filter.Match(link) {
						frontier.Push(link)
					}
				}
			}
			res.doc, res.err = r.convert(next, html)
		}

		results = append(results, res)
		report(progress, res, len(results), len(results)+frontier.Len())
	}
	return results, nil
}

func (r *Runner) convertURL(ctx context.Context, position int, url string) pageResult {
	res := pageResult{position: position, url: url}
	html, err := r.fetch(ctx, url)
	if err != nil {
		res.err = err
		return res
	}
	res.doc, res.err = r.convert(url, html)
	return res
}

func (r *Runner) fetch(ctx context.Context, rawURL string) (string, error) {
	if r.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", web2md.Errorf(web2md.EINVALID, "invalid URL: %q", rawURL)
		}
		if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, r.Fetcher, rawURL, delays, r.OnRetry)
}

func (r *Runner) convert(url, html string) (*web2md.Document, error) {
	doc, err := r.Converter.Convert(&web2md.Page{URL: url, HTML: html}, r.Options)
	if err != nil {
		return nil, err
	}
	doc.URL = url
	doc.ContentHash = ComputeHash(doc.Markdown)
	return doc, nil
}

// save stores successful results in order, skipping repeated content.
func (r *Runner) save(ctx context.Context, results []pageResult) (*Result, error) {
	var res Result
	seen := make(map[string]bool)

	for _, pr := range results {
		if pr.err != nil {
			res.Failed++
			continue
		}
		if seen[pr.doc.ContentHash] {
			res.Duplicates++
			continue
		}
		seen[pr.doc.ContentHash] = true

		if err := r.Store.Save(ctx, pr.doc); err != nil {
			res.Failed++
			continue
		}
		if r.Documents != nil {
			if err := r.Documents.CreateDocument(ctx, pr.doc); err != nil {
				res.Failed++
				continue
			}
		}
		res.Saved++
		res.Bytes += len(pr.doc.Markdown)
	}

	if res.Saved == 0 {
		if err := r.Store.Abort(); err != nil {
			return nil, fmt.Errorf("discarding output: %w", err)
		}
		return &res, nil
	}
	if err := r.Store.Commit(); err != nil {
		return nil, fmt.Errorf("publishing output: %w", err)
	}
	return &res, nil
}

func report(progress ProgressFunc, res pageResult, completed, total int) {
	event := ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: res.url}
	if res.err != nil {
		event.Type = ProgressFailed
		event.Error = res.err
	}
	progress(event)
}

// inScope reports whether link is on root's host and its path starts with
// root's path.
func inScope(root *url.URL, link string) bool {
	u, err := url.Parse(link)
	if err != nil || !strings.EqualFold(u.Host, root.Host) {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return strings.HasPrefix(path, root.Path)
}
