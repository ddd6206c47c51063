package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeLayout is the timestamp layout of a logger made without
// [WithTimeLayout].
const DefaultTimeLayout = time.RFC3339

// config is the immutable description of a logger's handler. Options return
// modified copies, so a config may be shared between loggers freely.
type config struct {
	output io.Writer
	layout string // empty omits timestamps
	level  Level
	format Format
	caller bool
	pretty bool
}

// Option modifies a logger's configuration.
type Option func(*config)

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{
		output: w,
		layout: DefaultTimeLayout,
		level:  DefaultLevel,
		format: DefaultFormat,
		pretty: true,
	}

	return c.with(opts...)
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		opt(&c)
	}

	if c.output == nil {
		c.output = io.Discard
	}

	return c
}

// WithOutput sets the writer records go to. A nil writer discards them.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum level written.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat selects text or JSON records.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout. Named layouts of the [time]
// package are recognized regardless of case and punctuation ("rfc3339nano",
// "Kitchen", "stamp-milli"); anything else is used verbatim. A blank layout
// or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c *config) { c.layout = lookupLayout(layout) }
}

// WithCaller adds the source position of each log call to its record.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty selects the colorized handlers meant for a terminal.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

var namedLayouts = map[string]string{
	"none":        "",
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"datetime":    time.DateTime,
}

func lookupLayout(layout string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + 'a' - 'A'
		}

		return -1
	}, layout)

	if key == "" {
		return ""
	}

	if named, ok := namedLayouts[key]; ok {
		return named
	}

	return layout
}

// replaceAttr formats the built-in time and level attributes.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		if c.layout == "" {
			return slog.Attr{}
		}

		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(c.layout))
		}

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(Level(l).named().String())
		}
	}

	return a
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.format != FormatText && c.format != FormatJSON:
		return slog.DiscardHandler

	case c.pretty:
		return newPrettyHandler(c.output, c.format == FormatJSON, opts)

	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)

	default:
		return slog.NewJSONHandler(c.output, opts)
	}
}
