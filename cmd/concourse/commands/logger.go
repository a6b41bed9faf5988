package commands

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// slogLogger adapts a *slog.Logger to concourse.Logger.
type slogLogger struct {
	logger *slog.Logger
}

// newLogger writes text logs to w. Debug records are kept only when verbose.
func newLogger(w io.Writer, verbose bool) concourse.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return &slogLogger{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *slogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
