package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/specialize/lang"
)

// List prints every environment in the order it is first declared, with its
// parents and the number of values it assigns itself.
type List struct{}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	diags := new(lang.Diagnostics)

	store, err := load(ctx, diags)
	if err != nil {
		return err
	}

	if err := diags.Err(); err != nil {
		return err
	}

	w := outputFrom(ctx)

	for env := range store.All() {
		if _, err := fmt.Fprintln(w, env); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
