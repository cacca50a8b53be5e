package logger

import (
	"log/slog"
	"time"
)

// LogSweep logs one iteration of a background sweep
func LogSweep(name string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "sweep"),
		slog.String("name", name),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Sweep failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Sweep finished", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
