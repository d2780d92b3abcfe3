// Package logger is a thin key/value wrapper over log/slog.
//
// Calls follow the form logger.Error("Component:Method:Step", "key", value, ...).
// A lone error argument is accepted and logged under the "error" key.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Init replaces the process logger. JSON output is used outside development.
func Init(level, env string) {
	current.Store(New(os.Stdout, level, env))
}

func New(w io.Writer, level, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(env, "development") || strings.EqualFold(env, "local") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("service", "club-api")
}

// SetLogger is used by tests to capture output.
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

func L() *slog.Logger {
	return current.Load()
}

func Debug(msg string, args ...any) { L().Debug(msg, normalize(args)...) }
func Info(msg string, args ...any)  { L().Info(msg, normalize(args)...) }
func Warn(msg string, args ...any)  { L().Warn(msg, normalize(args)...) }
func Error(msg string, args ...any) { L().Error(msg, normalize(args)...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// normalize turns an odd leading error or value into an "error"/"value" pair so
// slog does not emit !BADKEY attributes.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	key := "value"
	if _, ok := args[0].(error); ok || args[0] == nil {
		key = "error"
	}
	return append([]any{key}, args...)
}
