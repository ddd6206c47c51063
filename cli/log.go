package cli

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/ardnew/specialize/log"
)

// logLevel and logFormat apply themselves to the logger as kong decodes
// them, so errors found later in parsing are already logged as requested.
type (
	logLevel  string
	logFormat string
)

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"         enum:"${logLevelEnum}" help:"Set log level."`
	Format     logFormat `default:"text"         enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                              help:"Set timestamp format (a Go layout, a time package constant name, or none)."`
	Caller     bool      `default:"false"                                help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"${logPretty}"                         help:"Enable colorized pretty printing." negatable:""`
}

// vars enables pretty printing by default only when standard error is a
// terminal.
func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
		"logPretty":     strconv.FormatBool(term.IsTerminal(int(os.Stderr.Fd()))),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options (written to standard error)"}
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies the log flags in args before kong parses them, wherever they
// appear on the command line. Valued flags are given as "--log-level=debug"
// or "--log-level debug". Switches are given as "--log-caller",
// "--log-caller=false" or "--no-log-caller"; a switch with a malformed
// value is left for kong to reject.
func (f *logConfig) scan(args []string) {
	valued := map[string]func(string){
		"level":       func(v string) { _ = f.Level.UnmarshalText([]byte(v)) },
		"format":      func(v string) { _ = f.Format.UnmarshalText([]byte(v)) },
		"time-layout": func(v string) { f.TimeLayout = v; log.Config(log.WithTimeLayout(v)) },
	}

	switches := map[string]struct {
		field  *bool
		option func(bool) log.Option
	}{
		"caller": {&f.Caller, log.WithCaller},
		"pretty": {&f.Pretty, log.WithPretty},
	}

	for i := 0; i < len(args); i++ {
		flag, value, assigned := strings.Cut(args[i], "=")

		name, negated := strings.CutPrefix(flag, "--no-log-")
		if !negated {
			var ok bool
			if name, ok = strings.CutPrefix(flag, "--log-"); !ok {
				continue
			}
		}

		if set, ok := valued[name]; ok && !negated {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			set(value)

			continue
		}

		sw, ok := switches[name]
		if !ok {
			continue
		}

		on := true

		if assigned {
			v, err := strconv.ParseBool(value)
			if err != nil {
				continue
			}

			on = v
		}

		*sw.field = on != negated
		log.Config(sw.option(*sw.field))
	}
}
