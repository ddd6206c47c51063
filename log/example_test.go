package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/specialize/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.InfoContext(context.Background(), "rendered", slog.String("dst", "out/app.conf"))
	// Output: level=info msg=rendered dst=out/app.conf
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none"))
	logger = logger.With(slog.String("environment", "prod"))

	logger.WarnContext(context.Background(), "unused override", slog.String("key", "db.port"))
	// Output: {"level":"warn","msg":"unused override","environment":"prod","key":"db.port"}
}
