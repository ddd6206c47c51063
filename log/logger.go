package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes leveled, structured records. The zero value discards
// everything, so packages can hold a Logger field without checking it.
type Logger struct {
	handler slog.Handler
	config  config
}

// Make returns a Logger writing to w. Without options it writes JSON at
// [DefaultLevel] with [DefaultTimeLayout] timestamps and pretty printing on.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{handler: cfg.handler(), config: cfg}
}

// Wrap returns a Logger with l's configuration modified by opts. Attributes
// added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.handler == nil {
		return Make(nil, opts...)
	}

	cfg := l.config.with(opts...)

	return Logger{handler: cfg.handler(), config: cfg}
}

// With returns a Logger that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil || len(attrs) == 0 {
		return l
	}

	l.handler = l.handler.WithAttrs(attrs)

	return l
}

// Level returns the minimum level written.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.config.level
}

// Format returns the record format.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.config.format
}

// Enabled reports whether records at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

// TraceContext writes a record at [LevelTrace].
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

// DebugContext writes a record at [LevelDebug].
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

// InfoContext writes a record at [LevelInfo].
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

// WarnContext writes a record at [LevelWarn].
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

// ErrorContext writes a record at [LevelError].
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

// log writes a record. It must be called directly by an exported function so
// that the record's source is that function's caller.
func (l Logger) log(
	ctx context.Context,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.config.caller {
		// runtime.Callers, log, the exported function.
		var pcs [1]uintptr

		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, r)
}
