// Package logging defines the structured-logging interface used across
// gophauth, with slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values for the log_format setting.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatZap  = "zap"
)

// New builds a Logger for the given format writing to w (os.Stdout when nil).
func New(format string, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	switch format {
	case FormatJSON, "":
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil))), nil
	case FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil))), nil
	case FormatZap:
		return NewZapLogger(w), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Syncer is implemented by loggers that buffer output.
type Syncer interface {
	Sync() error
}

// Sync flushes l when it buffers and does nothing otherwise. Call it once on
// shutdown, after the last log line.
func Sync(l Logger) error {
	if s, ok := l.(Syncer); ok {
		return s.Sync()
	}
	return nil
}
