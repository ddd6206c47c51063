//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/specialize/log"
	"github.com/ardnew/specialize/profile"
)

// pprofConfig selects a profile to record while the command runs.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Record a profile of this kind" placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Directory profiles are written to"                      type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(cacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: profile.Tag, Title: "Profiling (pprof)"}
}

// start begins recording, and returns the function that stops it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.Profiler{Mode: f.Mode, Dir: f.Dir, Quiet: true}
	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	if f.Mode != "" {
		log.DebugContext(ctx, "profiling", attrs...)
	}

	running := p.Start()

	return func() {
		running.Stop()

		if f.Mode != "" {
			log.DebugContext(ctx, "profile written", attrs...)
		}
	}
}
