package cmd

import (
	"context"
)

// Dump prints the resolved variables of one environment.
type Dump struct {
	Environment string   `arg:"" help:"Environment name" name:"env"`
	Keys        []string `help:"Add a template key and value" name:"key" placeholder:"KEY=VALUE" sep:"none" short:"k"`

	Format string `default:"yaml" enum:"${encodings}" help:"Output format"                 short:"f"`
	Indent int    `default:"2"                        help:"Indent width (0 is most compact)" short:"i"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	vars, err := variables(ctx, d.Environment, d.Keys)
	if err != nil {
		return err
	}

	return encode(ctx, vars, d.Format, d.Indent)
}
