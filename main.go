package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/specialize/cli"
	"github.com/ardnew/specialize/log"
)

func main() {
	ctx := context.Background()
	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	switch code := cli.ExitStatus(err); code {
	case cli.ExitOK:

	case cli.ExitInvalid:
		// Diagnostics and template errors are meant to be read as they are.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)

	default:
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
		os.Exit(code)
	}
}
