// Package logger assembles the structured logging pipeline: JSON output,
// optional rotating file sink, sensitive-field masking and Sentry fanout.
package logger

import (
	"io"
	"log/slog"
	"os"

	slogsentry "github.com/samber/slog-sentry/v2"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logging pipeline.
type Options struct {
	Level slog.Level
	// File enables a rotating file sink alongside stdout when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// SentryEnabled adds a Sentry handler for warn-and-above records; the
	// Sentry SDK must be initialized by the caller.
	SentryEnabled bool
}

// New builds the application logger.
func New(opts Options) *slog.Logger {
	writer := io.Writer(os.Stdout)
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stdout, rotating)
	}

	handler := slog.Handler(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: opts.Level}))

	if opts.SentryEnabled {
		sentryHandler := slogsentry.Option{Level: slog.LevelWarn}.NewSentryHandler()
		handler = newTeeHandler(handler, sentryHandler)
	}

	return slog.New(NewMaskingHandler(handler))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
