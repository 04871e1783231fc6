package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/web2md"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// engineStats summarizes one engine's output for the comparison table.
type engineStats struct {
	name     string
	markdown string
	elapsed  time.Duration
	err      error
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	page, err := loadPage(deps, c.Source, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}
	opts := c.Options()

	results := []engineStats{
		runEngine("rules", deps.Converter, page, opts),
		runEngine("html-to-markdown", deps.Reference, page, opts),
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Engine", "Characters", "Lines", "Headings", "Links", "Images", "Time"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
	})
	for _, r := range results {
		if r.err != nil {
			t.AppendRow(table.Row{r.name, "error: " + web2md.ErrorMessage(r.err)})
			continue
		}
		images := strings.Count(r.markdown, "![")
		t.AppendRow(table.Row{
			r.name,
			len(r.markdown),
			strings.Count(r.markdown, "\n") + 1,
			len(web2md.Outline(r.markdown)),
			strings.Count(r.markdown, "](") - images,
			images,
			r.elapsed.Round(time.Microsecond),
		})
	}
	t.Render()

	for _, r := range results {
		if r.err != nil {
			continue
		}
		out := r.markdown
		if !c.Full {
			out = web2md.Preview(out, web2md.DefaultPreviewLength)
		}
		fmt.Fprintf(deps.Stdout, "\n=== %s ===\n%s\n", r.name, out)
	}

	for _, r := range results {
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

func runEngine(name string, conv web2md.Converter, page *web2md.Page, opts web2md.Options) engineStats {
	start := time.Now()
	doc, err := conv.Convert(page, opts)
	stats := engineStats{name: name, elapsed: time.Since(start), err: err}
	if err == nil {
		stats.markdown = doc.Markdown
	}
	return stats
}
