package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/log"
	"github.com/ardnew/specialize/render"
	"github.com/ardnew/specialize/secret"
)

var errRenderPaths = errors.New("SRC and DST are required unless --dump is given")

// Render renders a template file or directory with the variables of an
// environment.
type Render struct {
	Src string `arg:"" help:"Source template file or directory"                                     name:"src" optional:""`
	Dst string `arg:"" help:"Destination file or directory (a trailing separator renders into it)" name:"dst" optional:""`

	Environment string   `help:"Environment name"                                  placeholder:"ENV"       short:"e"`
	Keys        []string `help:"Add a template key and value"                      name:"key"              placeholder:"KEY=VALUE" sep:"none" short:"k"`
	Dump        bool     `help:"Print the template variables and exit"`
	DumpFormat  string   `default:"yaml" enum:"${encodings}"                       help:"Format of --dump output"`
	AWSRegion   string   `help:"AWS region for parameter store lookups"            name:"aws-region"`
	AWSProfile  string   `help:"AWS shared config profile for parameter lookups"   name:"aws-profile"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	vars, err := variables(ctx, r.Environment, r.Keys)
	if err != nil {
		return err
	}

	if r.Dump {
		return encode(ctx, vars, r.DumpFormat, lang.DefaultIndent)
	}

	if r.Src == "" || r.Dst == "" {
		return ErrUsage.With(slog.String("command", "render")).
			Wrap(errRenderPaths)
	}

	secrets := secret.NewSSM(
		secret.WithRegion(r.AWSRegion),
		secret.WithProfile(r.AWSProfile),
		secret.WithLogger(log.Default()),
	)

	return render.New(vars,
		render.WithSecrets(secrets),
		render.WithLogger(log.Default()),
	).Render(ctx, r.Src, r.Dst)
}
