package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/web2md"
)

// Ensure LoggingURLSource implements web2md.URLSource.
var _ web2md.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with logging.
type LoggingURLSource struct {
	next   web2md.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next web2md.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) Discover(ctx context.Context, siteURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		logOutcome(ctx, s.logger, "sitemap discovery", err,
			"url", siteURL,
			"count", len(urls),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Discover(ctx, siteURL)
}
