package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docview"
)

// Ensure LoggingSource implements docview.Source.
var _ docview.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging of every fetch.
type LoggingSource struct {
	next   docview.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next docview.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source and logs name, size and duration.
func (s *LoggingSource) Fetch(ctx context.Context, name string) (content string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Debug("fetch",
				"name", name,
				"duration", time.Since(begin),
				"code", docview.ErrorCode(err),
				"error", err,
			)
			return
		}
		s.logger.Debug("fetch",
			"name", name,
			"bytes", len(content),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return s.next.Fetch(ctx, name)
}
