package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to a structured logger. It is the fallback
// sink when nothing else is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "notify")}
}

func (s *LogSink) Notify(ctx context.Context, n Notification) error {
	s.logger.InfoContext(ctx, "notification",
		"title", n.Title,
		"message", n.Message,
		"app", n.AppName,
		"timeout", n.Timeout,
	)
	return nil
}

func (s *LogSink) Name() string { return "log" }
