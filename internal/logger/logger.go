// Package logger provides structured logging for the application.
// It wraps log/slog with JSON formatting, enriches records with
// request-scoped context values, and optionally ships logs to
// Better Stack without blocking the request path.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogbetterstack "github.com/samber/slog-betterstack"
)

// Logger is the application logger.
type Logger struct {
	*slog.Logger

	async *AsyncHandler
}

// Options configures remote log shipping.
type Options struct {
	// BetterStackToken enables Better Stack shipping when non-empty.
	BetterStackToken    string
	BetterStackEndpoint string
}

// New creates a logger writing JSON to stdout.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a logger writing JSON to the provided writer.
func NewWithWriter(level string, w io.Writer) *Logger {
	handler := NewContextHandler(jsonHandler(level, w))
	return &Logger{Logger: slog.New(handler)}
}

// NewWithOptions creates a logger that writes JSON to stdout and, when a
// Better Stack token is configured, additionally ships records to Better
// Stack through an async pipeline.
func NewWithOptions(level string, opts Options) *Logger {
	local := jsonHandler(level, os.Stdout)
	if opts.BetterStackToken == "" {
		return &Logger{Logger: slog.New(NewContextHandler(local))}
	}

	remote := slogbetterstack.Option{
		Token:    opts.BetterStackToken,
		Endpoint: opts.BetterStackEndpoint,
		Level:    parseLevel(level),
	}.NewBetterstackHandler()

	async := NewAsyncHandler(remote, AsyncOptions{})
	handler := NewContextHandler(NewMultiHandler(local, async))
	return &Logger{Logger: slog.New(handler), async: async}
}

// Shutdown flushes any pending remote log records.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l.async == nil {
		return nil
	}
	return l.async.Shutdown(ctx)
}

func jsonHandler(level string, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
			case slog.LevelKey:
				a.Key = "level"
				name := a.Value.String()
				if name == "WARN" {
					name = "warning"
				} else {
					name = strings.ToLower(name)
				}
				a.Value = slog.StringValue(name)
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch level {
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

// WithModule creates a new entry with a module field.
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{Logger: l.With("module", module), async: l.async}
}

// WithRequestID creates a new entry with a request ID field.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.With("request_id", requestID), async: l.async}
}

// WithError creates a new entry with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err), async: l.async}
}

// WithField creates a new entry with a single field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With(key, value), async: l.async}
}

// WithFields creates a new entry with multiple fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.With(args...), async: l.async}
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}
