package cmd

import (
	"log/slog"
	"slices"
)

// Error is a command failure of a known kind. The kinds are the Err
// sentinels below; errors derived from one with [Error.Wrap] or
// [Error.With] match it under errors.Is, and log their attributes.
type Error struct {
	kind  *Error // nil for a sentinel
	msg   string
	cause error
	attrs []slog.Attr
}

func newError(msg string) *Error { return &Error{msg: msg} }

var (
	ErrOpenSource  = newError("open environment file")
	ErrOverride    = newError("invalid override (expected KEY=VALUE)")
	ErrUsage       = newError("invalid usage")
	ErrWriteOutput = newError("write output")
	ErrWriteConfig = newError("write configuration file")
	ErrFileExists  = newError("file exists (use --force to overwrite)")
	ErrNoTerminal  = newError("standard input is not a terminal")
)

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}

	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel e derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t == e.sentinel()
}

func (e *Error) sentinel() *Error {
	if e.kind == nil {
		return e
	}

	return e.kind
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.cause = err

	return d
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	d := e.derive()
	d.attrs = slices.Concat(e.attrs, attrs)

	return d
}

func (e *Error) derive() *Error {
	return &Error{kind: e.sentinel(), msg: e.msg, cause: e.cause, attrs: e.attrs}
}

// LogValue groups the message, the cause and the attributes.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.msg)}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}
