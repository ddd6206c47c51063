package log

import (
	"context"
	"log/slog"
	"os"
)

// std writes to standard error so that log records never mix with rendered
// or dumped output on standard output.
var std = Make(os.Stderr)

// Config reconfigures the default logger.
func Config(opts ...Option) { std = std.Wrap(opts...) }

// Default returns the default logger.
func Default() Logger { return std }

// TraceContext writes a record at [LevelTrace] to the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std.log(ctx, LevelTrace, msg, attrs)
}

// DebugContext writes a record at [LevelDebug] to the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std.log(ctx, LevelDebug, msg, attrs)
}

// InfoContext writes a record at [LevelInfo] to the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std.log(ctx, LevelInfo, msg, attrs)
}

// WarnContext writes a record at [LevelWarn] to the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std.log(ctx, LevelWarn, msg, attrs)
}

// ErrorContext writes a record at [LevelError] to the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	std.log(ctx, LevelError, msg, attrs)
}
