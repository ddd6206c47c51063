package repl

import (
	"context"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/log"
	"github.com/ardnew/specialize/render"
)

// Session holds the variables a REPL evaluates expressions against: the
// resolved overlay of one environment (or of none) with command-line
// overrides applied on top.
type Session struct {
	store     *lang.Store
	overrides []lang.Override
	env       string
	vars      map[string]any
	logger    log.Logger
}

// NewSession selects env in store. The store should already be checked;
// only diagnostics caused by the overrides are reported here.
func NewSession(
	ctx context.Context,
	store *lang.Store,
	env string,
	overrides []lang.Override,
	logger log.Logger,
) (*Session, error) {
	s := &Session{
		store:     store,
		overrides: overrides,
		logger:    logger,
	}

	if err := s.Select(ctx, env); err != nil {
		return nil, err
	}

	return s, nil
}

// Select re-resolves the session's variables from environment env. On error
// the current selection is kept.
func (s *Session) Select(ctx context.Context, env string) error {
	if env != "" && !s.store.Has(env) {
		return &lang.EnvironmentError{Name: env}
	}

	diags := new(lang.Diagnostics)

	s.store.Overlay(env, s.overrides, diags)

	for range s.store.Values(lang.OverlayName, diags) {
	}

	if err := diags.Err(); err != nil {
		s.store.Overlay(s.env, s.overrides, nil)

		return err
	}

	s.env = env
	s.vars = s.store.Resolve(ctx, lang.OverlayName, lang.WithLogger(s.logger))

	s.logger.TraceContext(ctx, "repl environment selected",
		slog.String("environment", env),
		slog.Int("override_count", len(s.overrides)),
		slog.Int("variable_count", len(s.vars)),
	)

	return nil
}

// Environment returns the name of the selected environment, or "" if none.
func (s *Session) Environment() string { return s.env }

// Vars returns the resolved variables.
func (s *Session) Vars() map[string]any { return s.vars }

// Environments returns the parsed environments in declaration order.
func (s *Session) Environments() iter.Seq[*lang.Environment] {
	return func(yield func(*lang.Environment) bool) {
		for env := range s.store.All() {
			if env.Name == lang.OverlayName {
				continue
			}

			if !yield(env) {
				return
			}
		}
	}
}

// Eval evaluates an expr-lang expression against the variables and the
// expression builtins.
func (s *Session) Eval(input string) (any, error) {
	return render.Eval(input, s.vars)
}

// Children returns the member names available below the dotted path parent.
// The empty path lists the top-level variables, the expression builtins and
// the expr-lang builtin functions. A path into a variable lists map keys;
// otherwise the path is looked up among the expression builtins.
func (s *Session) Children(parent string) []string {
	if parent == "" {
		names := slices.Sorted(maps.Keys(s.vars))
		names = append(names, render.BuiltinKeys()...)

		return append(names, exprBuiltinNames()...)
	}

	if v, ok := lookup(s.vars, parent); ok {
		return memberNames(v)
	}

	if parent == "env" {
		// env is a function in expressions.
		return nil
	}

	return render.BuiltinLookup(parent)
}

// lookup returns the value at the dotted path beneath vars. Integer segments
// index lists.
func lookup(vars map[string]any, path string) (any, bool) {
	var current any = vars

	for seg := range strings.SplitSeq(path, ".") {
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return nil, false
			}

			current = v

		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}

			current = c[i]

		default:
			return nil, false
		}
	}

	return current, true
}

func memberNames(v any) []string {
	if m, ok := v.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	return nil
}
