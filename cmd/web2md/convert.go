package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/fs"
)

var (
	success = color.New(color.FgGreen)
	notice  = color.New(color.FgYellow)
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	opts := c.Options()

	var (
		doc *web2md.Document
		err error
	)
	if c.Browser {
		doc, err = c.convertInBrowser(deps, opts)
	} else {
		doc, err = c.convertSource(deps, opts)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}
	success.Fprintf(deps.Stderr, "Converted %q (%d characters)\n", displayTitle(doc), len(doc.Markdown))

	if deps.Documents != nil {
		record := *doc
		if err := deps.Documents.CreateDocument(deps.Ctx, &record); err != nil {
			notice.Fprintf(deps.Stderr, "warning: not saved to history: %s\n", web2md.ErrorMessage(err))
		} else {
			doc.ID = record.ID
			doc.ContentHash = record.ContentHash
			doc.ConvertedAt = record.ConvertedAt
		}
	}

	content := doc.Markdown
	if c.Frontmatter {
		content, err = fs.FormatDocument(doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
			return err
		}
	}

	if c.Copy {
		if err := deps.Clipboard.Copy(content); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
			return err
		}
		success.Fprintln(deps.Stderr, "Copied to clipboard")
	}

	if c.Download {
		id, err := deps.Downloads.Download(deps.Ctx, []byte(content), doc.Filename())
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
			return err
		}
		where := doc.Filename()
		if deps.DownloadPath != nil {
			if path, ok := deps.DownloadPath(id); ok {
				where = path
			}
		}
		success.Fprintf(deps.Stderr, "Saved %s\n", where)
	}

	if c.Stdout || (!c.Copy && !c.Download) {
		fmt.Fprint(deps.Stdout, content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Fprintln(deps.Stdout)
		}
	}
	return nil
}

func (c *ConvertCmd) convertSource(deps *Dependencies, opts web2md.Options) (*web2md.Document, error) {
	page, err := loadPage(deps, c.Source, c.URL)
	if err != nil {
		return nil, err
	}
	return deps.Converter.Convert(page, opts)
}

// convertInBrowser opens the source in a browser tab and converts the
// rendered document.
func (c *ConvertCmd) convertInBrowser(deps *Dependencies, opts web2md.Options) (*web2md.Document, error) {
	target, err := browserTarget(c.Source)
	if err != nil {
		return nil, err
	}

	tab, err := deps.Bridge.Open(deps.Ctx, target)
	if err != nil {
		return nil, err
	}
	if err := deps.Bridge.Ensure(deps.Ctx, tab.ID); err != nil {
		return nil, err
	}

	res := <-deps.Bridge.Convert(deps.Ctx, tab.ID, opts)
	if res.Err != nil {
		return nil, res.Err
	}
	if c.URL != "" {
		res.Document.URL = c.URL
	}
	return res.Document, nil
}

// loadPage reads the HTML of source, which is a URL, a file path or "-"
// for standard input. pageURL overrides the URL recorded for the page.
func loadPage(deps *Dependencies, source, pageURL string) (*web2md.Page, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return nil, web2md.Errorf(web2md.EINVALID, "reading standard input: %v", err)
		}
		return &web2md.Page{URL: pageURL, HTML: string(data)}, nil
	case isURL(source):
		html, err := deps.Fetcher.Fetch(deps.Ctx, source)
		if err != nil {
			return nil, err
		}
		if pageURL == "" {
			pageURL = source
		}
		return &web2md.Page{URL: pageURL, HTML: html}, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, web2md.Errorf(web2md.EINVALID, "reading %s: %v", source, err)
	}
	if pageURL == "" {
		pageURL, err = fileURL(source)
		if err != nil {
			return nil, err
		}
	}
	return &web2md.Page{URL: pageURL, HTML: string(data)}, nil
}

func browserTarget(source string) (string, error) {
	switch {
	case source == "-":
		return "", web2md.Errorf(web2md.EINVALID, "--browser needs a URL or a file, not standard input")
	case isURL(source):
		return source, nil
	}
	if _, err := os.Stat(source); err != nil {
		return "", web2md.Errorf(web2md.EINVALID, "reading %s: %v", source, err)
	}
	return fileURL(source)
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", web2md.Errorf(web2md.EINVALID, "resolving %s: %v", path, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func displayTitle(doc *web2md.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.URL
}
