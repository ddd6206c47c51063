package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/specialize/cli/cmd"
	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/pkg"
)

// CLI is the top-level command-line interface for specialize.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Config []string `help:"Environment file(s), or '-' for stdin" name:"config" placeholder:"FILE" short:"c" type:"existingfile"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template file or directory (default)"`
	Check  cmd.Check  `cmd:""                    help:"Check environment files for problems"`
	List   cmd.List   `cmd:""                    help:"List environments"`
	Dump   cmd.Dump   `cmd:""                    help:"Print the variables of an environment"`
	Diff   cmd.Diff   `cmd:""                    help:"Compare the variables of two environments"`
	Repl   cmd.Repl   `cmd:""                    help:"Explore the variables of an environment interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run parses args and runs the selected command. Kong calls exit when
// parsing ends the program early, as for --help or --version.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Log flags take effect before parsing so that parse errors honor them.
	cli.Log.scan(args)

	parser, err := kong.New(&cli, cli.options(ctx, configPath(baseConfig), exit)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithSources(cmd.WithContext(ctx, ktx), cli.Config)

	cli.Log.start(ctx)
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

// options configures kong. Flag defaults come from the JSON configuration
// file, then from the environment-format one, both at configFile.
func (cli *CLI) options(ctx context.Context, configFile string, exit func(int)) []kong.Option {
	vars := kong.Vars{
		"version":               pkg.Version,
		cmd.ConfigIdentifier:    configFile,
		cmd.CacheIdentifier:     cacheDir(),
		cmd.EncodingsIdentifier: strings.Join(slices.Collect(lang.Encodings()), ","),
	}

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true, Tree: true, NoExpandSubcommands: true}),
		kong.Configuration(kong.JSON, configFile+".json"),
		kong.Configuration(resolve(ctx, baseConfig), configFile),
		vars.CloneWith(cli.Log.vars()).CloneWith(cli.Pprof.vars()),
	}
}
