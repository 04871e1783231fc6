// Package slog provides logging decorators for web2md services.
package slog

import (
	"context"
	"log/slog"
)

// logOutcome logs msg at info level, or at warn level when err is set, so
// that failures remain visible when the handler only shows warnings.
func logOutcome(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...any) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, msg, append(attrs, "err", err)...)
}
