package logging

import (
	"context"
	"log/slog"
)

// Err wraps err in the shared error field.
func Err(err error) slog.Attr {
	return slog.Any(FieldError, err)
}

// Info logs an info message when a logger is configured.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning when a logger is configured.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error when a logger is configured. A nil err adds no error field.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, Err(err))
	}
	logger.Error(msg, args...)
}

// InfoContext logs through the request-scoped logger in ctx, or fallback when none is set.
func InfoContext(ctx context.Context, fallback *slog.Logger, msg string, args ...any) {
	Info(FromContext(ctx, fallback), msg, args...)
}

// WarnContext is the request-scoped form of Warn.
func WarnContext(ctx context.Context, fallback *slog.Logger, msg string, args ...any) {
	Warn(FromContext(ctx, fallback), msg, args...)
}

// ErrorContext is the request-scoped form of Error.
func ErrorContext(ctx context.Context, fallback *slog.Logger, msg string, err error, args ...any) {
	Error(FromContext(ctx, fallback), msg, err, args...)
}
