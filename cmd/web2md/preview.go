package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/web2md"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	markdown, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}

	if !c.HTML {
		fmt.Fprintln(deps.Stdout, web2md.Preview(markdown, c.Limit))
		return nil
	}

	var out string
	if c.Page {
		out, err = deps.Renderer.RenderPage(c.title(markdown), markdown)
	} else {
		out, err = deps.Renderer.RenderHTML(markdown)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}

func (c *PreviewCmd) read(deps *Dependencies) (string, error) {
	if c.File == "-" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", web2md.Errorf(web2md.EINVALID, "reading standard input: %v", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return "", web2md.Errorf(web2md.EINVALID, "reading %s: %v", c.File, err)
	}
	return string(data), nil
}

// title returns the first top-level heading, or the file name.
func (c *PreviewCmd) title(markdown string) string {
	for _, h := range web2md.Outline(markdown) {
		if h.Level == 1 {
			return h.Text
		}
	}
	if c.File == "-" {
		return web2md.DefaultFilename
	}
	return strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
}
