package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyHandler writes colorized records for a terminal: one line of
// key=value pairs, or an indented JSON-like object with one field per line.
// Strings are never quoted. Group names prefix keys with dots.
type prettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	object bool
	prefix string
	attrs  []slog.Attr
}

func newPrettyHandler(w io.Writer, object bool, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{mu: new(sync.Mutex), w: w, opts: *opts, object: object}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time), !r.Time.IsZero())
	fields = h.builtin(fields, slog.Any(slog.LevelKey, r.Level), true)

	if src := r.Source(); h.opts.AddSource && src != nil && src.File != "" {
		fields = h.builtin(fields, slog.String(slog.SourceKey,
			src.File+":"+strconv.Itoa(src.Line)), true)
	}

	fields = h.builtin(fields, slog.String(slog.MessageKey, r.Message), true)
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		fields = append(fields, a)

		return true
	})

	var buf bytes.Buffer

	if h.object {
		buf.WriteString("{\n")
	}

	n := 0

	for _, a := range fields {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		h.field(&buf, n, a)
		n++
	}

	if h.object {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// builtin appends a, passed through ReplaceAttr, if present.
func (h *prettyHandler) builtin(fields []slog.Attr, a slog.Attr, present bool) []slog.Attr {
	if !present {
		return fields
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return append(fields, a)
}

func (h *prettyHandler) field(buf *bytes.Buffer, n int, a slog.Attr) {
	switch {
	case h.object && n > 0:
		buf.WriteString(",\n  ")
	case h.object:
		buf.WriteString("  ")
	case n > 0:
		buf.WriteByte(' ')
	}

	paint(buf, ansiGray, a.Key)

	if h.object {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	if a.Key == slog.LevelKey {
		paint(buf, levelColor(ParseLevel(a.Value.String())), a.Value.String())

		return
	}

	color, text := valueColor(a.Value)
	paint(buf, color, text)
}

func paint(buf *bytes.Buffer, color, text string) {
	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(ansiReset)
}

func levelColor(l Level) string {
	switch {
	case l >= LevelError:
		return ansiRed
	case l >= LevelWarn:
		return ansiYellow
	case l >= LevelInfo:
		return ansiGreen
	}

	return ansiBlue
}

func valueColor(v slog.Value) (string, string) {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return ansiYellow, v.String()

	case slog.KindBool:
		if v.Bool() {
			return ansiGreen, "true"
		}

		return ansiRed, "false"

	case slog.KindDuration:
		return ansiMagenta, v.String()

	case slog.KindTime:
		return ansiBlue, v.String()

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.String())
		}

		return ansiCyan, "{" + strings.Join(parts, " ") + "}"

	case slog.KindAny:
		if v.Any() == nil {
			return ansiGray, "null"
		}
	}

	return ansiCyan, v.String()
}
