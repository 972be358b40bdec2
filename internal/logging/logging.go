// Package logging builds the slog.Logger used by textbuddy and carries it
// through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to a slog.Level. The empty string means warn.
func ParseLevel(name string) (slog.Level, bool) {
	if name == "" {
		return slog.LevelWarn, true
	}
	level, ok := levels[strings.ToLower(name)]
	return level, ok
}

// Options selects the level and destination of log output.
type Options struct {
	Level string
	// File receives JSON records when set. Otherwise text records go to Stderr.
	File   string
	Stderr io.Writer
}

// New builds a logger from opts. The returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, ok := ParseLevel(opts.Level)
	if !ok {
		return nil, nil, fmt.Errorf("unknown log level %q", opts.Level)
	}

	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
		return slog.New(handler), file, nil
	}

	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nopCloser{}, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type key struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	return Discard()
}
