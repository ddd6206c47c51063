package cmd

import (
	"context"
	"errors"
	"os"
	"slices"

	"golang.org/x/term"

	"github.com/ardnew/specialize/cli/cmd/repl"
	"github.com/ardnew/specialize/log"
)

var errReplStdin = errors.New("environment files cannot be read from standard input")

// Repl starts an interactive inspector over the variables of an environment.
type Repl struct {
	Environment string   `help:"Environment name"             placeholder:"ENV"       short:"e"`
	Keys        []string `help:"Add a template key and value" name:"key"              placeholder:"KEY=VALUE" sep:"none" short:"k"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNoTerminal
	}

	if slices.Contains(sourcesFrom(ctx), stdinSource) {
		return ErrUsage.Wrap(errReplStdin)
	}

	overrides, err := parseOverrides(r.Keys)
	if err != nil {
		return err
	}

	var names []string
	if r.Environment != "" {
		names = []string{r.Environment}
	}

	store, err := prepare(ctx, names, nil)
	if err != nil {
		return err
	}

	session, err := repl.NewSession(ctx, store, r.Environment, overrides, log.Default())
	if err != nil {
		return err
	}

	return repl.Run(ctx, session, cacheDirFrom(ctx), log.Default())
}

// cacheDirFrom returns the cache directory kong was configured with, or the
// working directory.
func cacheDirFrom(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			return dir
		}
	}

	return "."
}
