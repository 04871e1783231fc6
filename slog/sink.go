package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/web2md"
)

// Ensure LoggingDownloadSink implements web2md.DownloadSink.
var _ web2md.DownloadSink = (*LoggingDownloadSink)(nil)

// LoggingDownloadSink wraps a DownloadSink with logging.
type LoggingDownloadSink struct {
	next   web2md.DownloadSink
	logger *slog.Logger
}

// NewLoggingDownloadSink creates a new LoggingDownloadSink.
func NewLoggingDownloadSink(next web2md.DownloadSink, logger *slog.Logger) *LoggingDownloadSink {
	return &LoggingDownloadSink{next: next, logger: logger}
}

// Download delegates to the wrapped sink and logs the operation.
func (s *LoggingDownloadSink) Download(ctx context.Context, content []byte, suggestedFilename string) (id string, err error) {
	defer func(begin time.Time) {
		logOutcome(ctx, s.logger, "download", err,
			"filename", suggestedFilename,
			"bytes", len(content),
			"id", id,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Download(ctx, content, suggestedFilename)
}
