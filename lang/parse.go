package lang

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/klauspost/readahead"

	"github.com/ardnew/specialize/log"
)

// Line grammar of the environment format.
var (
	reComment = regexp.MustCompile(`^\s*(?:#.*)?$`)
	reHeader  = regexp.MustCompile(
		`^(?P<env>[A-Za-z_]\w*)` +
			`(?:\s*\(\s*(?P<parents>[A-Za-z_]\w*(?:\s*,\s*[A-Za-z_]\w*)*)\s*\))?` +
			`\s*:\s*$`,
	)
	reAssign = regexp.MustCompile(
		`^\s+(?P<key>[A-Za-z_]\w*(?:\.[A-Za-z_]\w*|\.\d+)*)` +
			`\s*=\s*` +
			`(?P<value>"[^"]*"|\d+(?:\.\d*)?|true|false)\s*$`,
	)
)

var (
	headerEnv     = reHeader.SubexpIndex("env")
	headerParents = reHeader.SubexpIndex("parents")
	assignKey     = reAssign.SubexpIndex("key")
	assignValue   = reAssign.SubexpIndex("value")
)

// options configures parsing.
type options struct {
	file   string
	diags  *Diagnostics
	logger log.Logger
}

// Option configures parsing, checking or resolution.
type Option func(*options)

// WithFile names the text being parsed for diagnostics.
func WithFile(name string) Option {
	return func(o *options) { o.file = name }
}

// WithDiagnostics sets the accumulator that receives every diagnostic.
//
// When parsing without an accumulator, the first syntax error stops parsing
// and is returned; redefinition diagnostics are still collected and returned
// together once the text is consumed.
func WithDiagnostics(d *Diagnostics) Option {
	return func(o *options) { o.diags = d }
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ParseReader reads all of r and parses it into s.
// See [Store.ParseString].
func (s *Store) ParseReader(ctx context.Context, r io.Reader, opts ...Option) error {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		o := makeOptions(opts...)

		return ErrReadInput.Wrap(err).With(slog.String("file", o.file))
	}

	return s.ParseString(ctx, string(data), opts...)
}

// ParseString parses environment-format text into s. It may be called any
// number of times on the same Store, once per input file; environments may
// be continued across calls.
//
// With [WithDiagnostics], every problem is accumulated and ParseString
// returns nil. Otherwise the first syntax error is returned immediately and
// any redefinition diagnostics are returned as [*Diagnostics] at the end.
func (s *Store) ParseString(ctx context.Context, text string, opts ...Option) error {
	o := makeOptions(opts...)

	diags := o.diags
	strict := diags == nil

	if strict {
		diags = new(Diagnostics)
	}

	o.logger.TraceContext(ctx, "parse start",
		slog.String("file", o.file),
		slog.Int("source_length", len(text)),
	)

	var current *Environment

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		loc := Location{File: o.file, Line: i + 1}

		if reComment.MatchString(line) {
			continue
		}

		if m := reHeader.FindStringSubmatch(line); m != nil {
			current = s.Define(m[headerEnv], splitParents(m[headerParents]), loc, diags)

			continue
		}

		if m := reAssign.FindStringSubmatch(line); m != nil && current != nil {
			current.AddValue(NewKeyValue(m[assignKey], m[assignValue], loc), m[assignKey], diags)

			continue
		}

		d := newDiagnostic(loc, ErrSyntax, "Syntax error: "+quote(line))
		if strict {
			return d
		}

		diags.Add(d)
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("file", o.file),
		slog.Int("line_count", len(lines)),
		slog.Int("environment_count", s.Len()),
		slog.Int("diagnostic_count", diags.Len()),
	)

	if strict {
		return diags.Err()
	}

	return nil
}

// splitParents splits the captured parent list of a header line.
func splitParents(s string) []string {
	if s == "" {
		return nil
	}

	parents := strings.Split(s, ",")
	for i, p := range parents {
		parents[i] = strings.TrimSpace(p)
	}

	return parents
}
