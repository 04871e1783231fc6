package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/web2md"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// historyTimeLayout formats conversion times in the history listing.
const historyTimeLayout = "2006-01-02 15:04"

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := web2md.DocumentFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversions found. Use 'web2md convert' to convert a page.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Converted", "Title", "URL", "Size"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignLeft, WidthMax: 40},
		{Number: 4, Align: text.AlignLeft, WidthMax: 60},
		{Number: 5, Align: text.AlignRight},
	})
	for _, d := range docs {
		t.AppendRow(table.Row{
			d.ID,
			d.ConvertedAt.Local().Format(historyTimeLayout),
			d.Title,
			d.URL,
			len(d.Markdown),
		})
	}
	t.Render()
	return nil
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}

	if !c.Outline {
		fmt.Fprintln(deps.Stdout, doc.Markdown)
		return nil
	}

	headings := web2md.Outline(doc.Markdown)
	if len(headings) == 0 {
		fmt.Fprintln(deps.Stdout, "No headings found.")
		return nil
	}
	for _, h := range headings {
		fmt.Fprintf(deps.Stdout, "%s%s  #%s\n", strings.Repeat("  ", h.Level-1), h.Text, h.Anchor)
	}
	return nil
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted conversion %s\n", c.ID)
	return nil
}
