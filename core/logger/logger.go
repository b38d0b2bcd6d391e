package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu  sync.RWMutex
	log *slog.Logger
)

// Init configures the process logger. level is one of debug|info|warn|error,
// format is text|json. Later calls replace the handler, so log lines emitted
// during early boot (before config is loaded) do not lock in the defaults.
func Init(level, format string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	mu.Lock()
	log = slog.New(handler)
	mu.Unlock()
}

func get() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init("info", "text")
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// normalize turns mixed args (bare errors, key/value pairs) into slog attrs.
// Callers pass either ("msg", err) or ("msg", "key", value, ...).
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	i := 0
	for i < len(args) {
		if err, ok := args[i].(error); ok {
			out = append(out, "error", err)
			i++
			continue
		}
		if i+1 < len(args) {
			out = append(out, args[i], args[i+1])
			i += 2
			continue
		}
		out = append(out, "detail", args[i])
		i++
	}
	return out
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}
