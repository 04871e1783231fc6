package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Converter web2md.Converter
	// Reference is the library based converter used by compare.
	Reference web2md.Converter
	Fetcher   web2md.Fetcher
	Bridge    web2md.TabBridge
	Documents web2md.DocumentService
	Downloads web2md.DownloadSink
	Clipboard web2md.Clipboard
	Renderer  web2md.HTMLRenderer

	// DownloadPath resolves a download ID to the file it was written to.
	DownloadPath func(id string) (string, bool)

	Runner    *batch.Runner
	OutputDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" env:"WEB2MD_DB" default:"${db}" help:"History database path"`
	Timeout time.Duration `env:"WEB2MD_TIMEOUT" default:"30s" help:"Timeout for loading a page"`
	Chrome  string        `env:"WEB2MD_CHROME" help:"Chrome executable used with --browser"`
	Verbose bool          `short:"v" env:"WEB2MD_VERBOSE" help:"Log every operation"`

	Convert ConvertCmd `cmd:"" help:"Convert a web page or HTML file to Markdown"`
	Batch   BatchCmd   `cmd:"" help:"Convert every page of a site"`
	History HistoryCmd `cmd:"" help:"Inspect past conversions"`
	Preview PreviewCmd `cmd:"" help:"Preview a Markdown file"`
	Compare CompareCmd `cmd:"" help:"Compare the rule engine with the html-to-markdown library"`
}

// ConversionFlags are the options shared by commands that convert pages.
type ConversionFlags struct {
	NoImages  bool   `help:"Drop images"`
	NoLinks   bool   `help:"Replace links with their text"`
	NoSmart   bool   `help:"Never use article extraction"`
	Selector  string `short:"s" help:"CSS selector of the content region"`
	Extractor string `env:"WEB2MD_EXTRACTOR" enum:"none,readability,trafilatura" default:"none" help:"Article extractor used for smart extraction (${enum})"`
}

// Options returns the conversion options selected by the flags.
func (f ConversionFlags) Options() web2md.Options {
	opts := web2md.DefaultOptions()
	opts.IncludeImages = !f.NoImages
	opts.IncludeLinks = !f.NoLinks
	opts.SmartExtraction = !f.NoSmart
	return opts
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	ConversionFlags

	Source      string `arg:"" help:"URL, HTML file, or - for standard input"`
	URL         string `short:"u" help:"Page URL of a file or standard input, used to resolve relative links"`
	Browser     bool   `short:"b" help:"Render the page in headless Chrome"`
	Copy        bool   `short:"c" help:"Copy the Markdown to the clipboard"`
	Download    bool   `short:"d" help:"Save the Markdown to the output directory"`
	Out         string `short:"o" env:"WEB2MD_OUT" default:"." help:"Output directory for --download"`
	Stdout      bool   `help:"Also print the Markdown when copying or downloading"`
	Frontmatter bool   `short:"f" help:"Prepend YAML frontmatter"`
	NoHistory   bool   `help:"Do not record the conversion"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	ConversionFlags

	URL         string   `arg:"" help:"Site URL"`
	Out         string   `short:"o" env:"WEB2MD_OUT" default:"." help:"Parent directory of the output"`
	Name        string   `short:"n" help:"Output directory name (default: the site host)"`
	Filter      []string `short:"F" sep:"none" help:"Only convert URLs matching regex (repeatable)"`
	Exclude     []string `short:"x" sep:"none" help:"Skip URLs matching regex (repeatable)"`
	Concurrency int      `short:"j" env:"WEB2MD_CONCURRENCY" default:"10" help:"Concurrent fetch limit"`
	Rate        float64  `env:"WEB2MD_RATE" default:"5" help:"Requests per second per host (0 for unlimited)"`
	Max         int      `help:"Maximum number of pages (0 for unlimited)"`
	Follow      bool     `default:"true" negatable:"" help:"Follow links when the site has no sitemap"`
	Browser     string   `enum:"never,always,auto" default:"never" help:"Fetch pages with headless Chrome (${enum})"`
	History     bool     `help:"Record every page in the history"`
	List        bool     `short:"l" help:"Only list the discovered URLs"`
}

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" default:"withargs" help:"List recent conversions"`
	Show   HistoryShowCmd   `cmd:"" help:"Print a stored conversion"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a stored conversion"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	URL    string `short:"u" help:"Only conversions of this URL"`
	Limit  int    `short:"n" default:"20" help:"Number of conversions to show"`
	Offset int    `help:"Number of conversions to skip"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID      string `arg:"" help:"Conversion ID"`
	Outline bool   `help:"Print the heading outline instead of the Markdown"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Conversion ID"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	File  string `arg:"" help:"Markdown file, or - for standard input"`
	HTML  bool   `help:"Render HTML instead of a text preview"`
	Page  bool   `help:"With --html, emit a standalone HTML document"`
	Limit int    `short:"n" default:"500" help:"Characters in the text preview"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	ConversionFlags

	Source string `arg:"" help:"URL, HTML file, or - for standard input"`
	URL    string `short:"u" help:"Page URL of a file or standard input"`
	Full   bool   `help:"Print both outputs in full"`
}
