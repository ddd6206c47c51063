package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// the environment called name in a file written in the environment format.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The environment is resolved like any other, so it may inherit from other
// environments in the same file. Its top-level keys are flag names with
// hyphens written as underscores; nested maps are ignored and lists become
// comma-separated values for slice flags:
//
//	config:
//	  log_level = "debug"
//	  log_pretty = false
//	  config.0 = "base.env"
//	  config.1 = "local.env"
//
// A file with any diagnostic is ignored as a whole. Command-line flags
// override config file values.
func resolve(ctx context.Context, name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		store := lang.NewStore()
		diags := new(lang.Diagnostics)

		if err := store.ParseReader(ctx, r, lang.WithFile(name), lang.WithDiagnostics(diags)); err != nil {
			return config{}, nil //nolint:nilerr
		}

		if !store.Has(name) {
			return config{}, nil
		}

		store.Check(ctx, lang.WithDiagnostics(diags))

		if diags.Len() > 0 {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.Any("diagnostics", diags.Strings()),
			)

			return config{}, nil
		}

		return makeConfig(store.Resolve(ctx, name)), nil
	}
}

// config implements [kong.Resolver] over a resolved environment.
type config map[string]any

// makeConfig converts the top-level values of vars to flag values.
func makeConfig(vars map[string]any) config {
	c := make(config, len(vars))

	for key, value := range vars {
		if v, ok := flagValue(value); ok {
			c[key] = v
		}
	}

	return c
}

// flagValue converts a resolved value to a form kong can parse. Kong requires
// numbers as strings.
func flagValue(value any) (any, bool) {
	switch v := value.(type) {
	case bool, string:
		return v, true

	case int64:
		return strconv.FormatInt(v, 10), true

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true

	case []any:
		parts := make([]string, 0, len(v))

		for _, elem := range v {
			e, ok := flagValue(elem)
			if !ok {
				return nil, false
			}

			parts = append(parts, fmt.Sprint(e))
		}

		return strings.Join(parts, ","), true

	default:
		return nil, false
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed and checked
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but environment keys
	// must use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
