package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/specialize/log"
)

// Check parses the environment files and checks every environment.
type Check struct{}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	store, err := prepare(ctx, nil, nil)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "no problems found",
		slog.Int("environment_count", store.Len()),
	)

	return nil
}
