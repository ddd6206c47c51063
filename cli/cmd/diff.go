package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/k14s/difflib"

	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/log"
)

// Diff compares the resolved variables of two environments.
type Diff struct {
	From string `arg:"" help:"Environment to compare from" name:"from"`
	To   string `arg:"" help:"Environment to compare to"   name:"to"`
}

// Run executes the diff command.
func (d *Diff) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	store, err := prepare(ctx, []string{d.From, d.To}, nil)
	if err != nil {
		return err
	}

	from, err := yamlLines(ctx, store, d.From)
	if err != nil {
		return err
	}

	to, err := yamlLines(ctx, store, d.To)
	if err != nil {
		return err
	}

	if slices.Equal(from, to) {
		return nil
	}

	_, err = fmt.Fprintf(outputFrom(ctx), "--- %s\n+++ %s\n%s\n",
		d.From, d.To, strings.TrimRight(difflib.PPDiff(from, to), "\n"))
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func yamlLines(ctx context.Context, store *lang.Store, name string) ([]string, error) {
	vars := store.Resolve(ctx, name, lang.WithLogger(log.Default()))

	text, err := lang.EncodeString(ctx, vars, lang.EncodingYAML, lang.DefaultIndent)
	if err != nil {
		return nil, err
	}

	return strings.Split(text, "\n"), nil
}
