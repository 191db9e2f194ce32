// Package logger provides a structured, levelled logger built on log/slog.
//
// Logs go to stderr: stdout belongs to the interactive shell. In production
// the output is JSON, otherwise human-readable text:
//
//	logger.Info("state saved", "driver", "file", "products", 12)
//	// → time=... level=INFO msg="state saved" driver=file products=12
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shashiranjanraj/mercado/config"
	"github.com/shashiranjanraj/mercado/pkg/event"
)

var L *slog.Logger

func init() {
	L = New(os.Stderr, config.IsProduction(), config.LogLevel())
	slog.SetDefault(L)
}

// New builds a logger writing to w.
func New(w io.Writer, production bool, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts)) // structured JSON for log aggregators
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Configure rebuilds the package logger after the config has been reloaded.
func Configure(w io.Writer) {
	L = New(w, config.IsProduction(), config.LogLevel())
	slog.SetDefault(L)
}

// ParseLevel maps debug/info/warn/error to a slog level; unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Component returns the base logger tagged with a component name.
func Component(name string) *slog.Logger {
	return L.With("component", name)
}

// Subscribe logs every market event at debug level.
func Subscribe(bus *event.Bus) {
	log := Component("events")
	bus.Listen(event.Wildcard, func(e event.Event) {
		log.Debug(e.Name, e.Args()...)
	})
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
