package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
)

var _ scrabtopus.Writer = (*LoggingWriter)(nil)

// LoggingWriter wraps a Writer with logging.
type LoggingWriter struct {
	next   scrabtopus.Writer
	name   string
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter. The name identifies the
// destination in log records.
func NewLoggingWriter(next scrabtopus.Writer, name string, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, name: name, logger: logger}
}

// Write delegates to the wrapped writer and logs the result.
func (w *LoggingWriter) Write(ctx context.Context, data *scrabtopus.ScrapedData) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"dest", w.name,
			"pages", data.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Write(ctx, data)
}
