// Package logger builds the process slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects level, format and an optional rotated log file.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // text, json
	FilePath   string // empty logs to stderr only
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
}

// New builds a logger writing to stderr and, when FilePath is set, to a
// rotated file as well.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	writers := []io.Writer{os.Stderr}
	var closer io.Closer = nopCloser{}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSize, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAge, 30),
			Compress:   true,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	return slog.New(NewHandler(io.MultiWriter(writers...), cfg)), closer, nil
}

// NewHandler builds the handler New uses, writing to w.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
