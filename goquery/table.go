package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// richCellSelector marks cells whose markup is converted with the rule set
// instead of being flattened to text.
const richCellSelector = "div, p, ul, ol, h1, h2, h3, h4, h5, h6"

// SerializeTable renders a table as a GitHub flavored Markdown table.
//
// Rows are the tr elements of the table in document order; rows without
// cells are skipped. Every row is padded to the widest row with empty cells
// and a separator line follows the first row. Cell text is flattened to a
// single line and pipes are escaped. Rich cells are rendered through r; a
// nil r flattens every cell to its text. Spans are not expanded.
func SerializeTable(table *goquery.Selection, r *Renderer) string {
	var rows [][]string
	columns := 0
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td, th")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cellContent(cell, r))
		})
		columns = max(columns, len(row))
		rows = append(rows, row)
	})
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, row := range rows {
		for len(row) < columns {
			row = append(row, " ")
		}
		writeTableLine(&sb, row)
		if i == 0 {
			separator := make([]string, columns)
			for j := range separator {
				separator[j] = "---"
			}
			writeTableLine(&sb, separator)
		}
	}
	return sb.String()
}

func writeTableLine(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}

func cellContent(cell *goquery.Selection, r *Renderer) string {
	var text string
	if r != nil && cell.Find(richCellSelector).Length() > 0 {
		n := cell.Get(0)
		cached, ok := r.cells[n]
		if !ok {
			cached = r.RenderChildren(n)
			r.cells[n] = cached
		}
		text = cached
	} else {
		text = cell.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "|", `\|`)
	if text == "" {
		return " "
	}
	return text
}

func selectionOf(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}
