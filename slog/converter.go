package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/web2md"
)

// Ensure LoggingConverter implements web2md.Converter.
var _ web2md.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging.
type LoggingConverter struct {
	next   web2md.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next web2md.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert logs the conversion with its input and output sizes.
func (c *LoggingConverter) Convert(page *web2md.Page, opts web2md.Options) (doc *web2md.Document, err error) {
	defer func(begin time.Time) {
		var url string
		var in, out int
		if page != nil {
			url, in = page.URL, len(page.HTML)
		}
		if doc != nil {
			out = len(doc.Markdown)
		}
		logOutcome(context.Background(), c.logger, "convert", err,
			"url", url,
			"html_bytes", in,
			"markdown_bytes", out,
			"images", opts.IncludeImages,
			"links", opts.IncludeLinks,
			"smart", opts.SmartExtraction,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Convert(page, opts)
}
