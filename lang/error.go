package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Diagnostic classes. Each [Diagnostic] unwraps to exactly one of these.
var (
	ErrSyntax                  = NewError("syntax error")
	ErrEnvironmentRedefinition = NewError("redefinition of environment")
	ErrValueRedefinition       = NewError("redefinition of value")
	ErrUnknownParent           = NewError("unknown parent environment")
	ErrCircularParent          = NewError("circular parent environment")
	ErrContainerRedefinition   = NewError("redefinition of container type")
	ErrInvalidListIndex        = NewError("invalid list index")
)

// Other sentinel errors.
var (
	ErrReadInput          = NewError("failed to read input")
	ErrUnknownEnvironment = NewError("unknown environment")
	ErrInvalidFormat      = NewError("invalid format")
	ErrEncode             = NewError("encode error")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from. Errors built
// with [Error.Wrap] or [Error.With] share their sentinel's message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Location identifies a line of configuration text.
// File is empty for text with no name, such as command-line overrides.
type Location struct {
	File string
	Line int
}

// String returns "file:line".
func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Diagnostic is a single problem found while parsing or checking
// configuration text.
type Diagnostic struct {
	Location

	Kind    *Error
	Message string
}

// Error returns the diagnostic in "file:line: message" form.
func (d *Diagnostic) Error() string {
	return d.Location.String() + ": " + d.Message
}

// Unwrap returns the diagnostic's class sentinel.
func (d *Diagnostic) Unwrap() error { return d.Kind }

// LogValue implements slog.LogValuer.
func (d *Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", d.File),
		slog.Int("line", d.Line),
		slog.String("kind", d.Kind.msg),
		slog.String("message", d.Message),
	)
}

// Diagnostics accumulates diagnostics in the order they are found.
// The zero value is ready to use.
type Diagnostics struct {
	list []*Diagnostic
	seen map[string]struct{}
}

// Add appends d unconditionally.
func (ds *Diagnostics) Add(d *Diagnostic) {
	if ds.seen == nil {
		ds.seen = make(map[string]struct{})
	}

	ds.seen[d.Error()] = struct{}{}
	ds.list = append(ds.list, d)
}

// AddUnique appends d unless a diagnostic with the identical string form was
// already recorded. It reports whether d was appended.
func (ds *Diagnostics) AddUnique(d *Diagnostic) bool {
	if _, ok := ds.seen[d.Error()]; ok {
		return false
	}

	ds.Add(d)

	return true
}

// Len returns the number of recorded diagnostics.
func (ds *Diagnostics) Len() int {
	if ds == nil {
		return 0
	}

	return len(ds.list)
}

// All returns the recorded diagnostics in order.
func (ds *Diagnostics) All() []*Diagnostic {
	if ds == nil {
		return nil
	}

	return slices.Clone(ds.list)
}

// Strings returns the "file:line: message" form of every diagnostic.
func (ds *Diagnostics) Strings() []string {
	if ds == nil {
		return nil
	}

	s := make([]string, len(ds.list))
	for i, d := range ds.list {
		s[i] = d.Error()
	}

	return s
}

// Err returns ds as an error, or nil when nothing was recorded.
func (ds *Diagnostics) Err() error {
	if ds.Len() == 0 {
		return nil
	}

	return ds
}

// Error joins all diagnostics with newlines.
func (ds *Diagnostics) Error() string {
	return strings.Join(ds.Strings(), "\n")
}

// Unwrap exposes each diagnostic to errors.Is and errors.As.
func (ds *Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds.list))
	for i, d := range ds.list {
		errs[i] = d
	}

	return errs
}

// quote wraps s in double quotes verbatim, without escaping.
func quote(s string) string { return `"` + s + `"` }

func newDiagnostic(loc Location, kind *Error, message string) *Diagnostic {
	return &Diagnostic{Location: loc, Kind: kind, Message: message}
}

// EnvironmentError reports a reference, outside of any configuration text, to
// an environment that is not defined.
type EnvironmentError struct {
	Name string
}

func (e *EnvironmentError) Error() string {
	return "unknown environment " + quote(e.Name)
}

// Unwrap returns [ErrUnknownEnvironment].
func (e *EnvironmentError) Unwrap() error { return ErrUnknownEnvironment }
