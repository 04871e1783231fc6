package main

import (
	"fmt"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/batch"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if c.List {
		return c.runList(deps)
	}

	progress := func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "\r%80s\rskip %s: %s\n", "", e.URL, web2md.ErrorMessage(e.Error))
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "\r[%d/%d] %s", e.Completed, e.Total, batch.TruncateURL(e.URL, 40))
		case batch.ProgressFinished:
			fmt.Fprintf(deps.Stderr, "\r%80s\r", "")
		}
	}

	res, err := deps.Runner.Run(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}

	if res.Saved == 0 {
		notice.Fprintln(deps.Stderr, "No pages saved")
	} else {
		success.Fprintf(deps.Stdout, "Saved %d pages (%s) to %s\n", res.Saved, batch.FormatBytes(res.Bytes), deps.OutputDir)
	}
	if res.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d duplicate pages\n", res.Duplicates)
	}
	if res.Failed > 0 {
		notice.Fprintf(deps.Stdout, "%d pages failed\n", res.Failed)
	}
	return nil
}

func (c *BatchCmd) runList(deps *Dependencies) error {
	urls, err := deps.Runner.URLs.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}
	urls = deps.Runner.Filter.Apply(urls)
	if c.Max > 0 && len(urls) > c.Max {
		urls = urls[:c.Max]
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
