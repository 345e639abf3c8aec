package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docview"
)

// Ensure LoggingRenderer implements docview.Renderer.
var _ docview.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging of render timings.
type LoggingRenderer struct {
	next   docview.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next docview.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(text string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Warn("render",
				"chars", len(text),
				"duration", time.Since(begin),
				"error", err,
			)
			return
		}
		r.logger.Debug("render",
			"chars", len(text),
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return r.next.Render(text)
}
