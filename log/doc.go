// Package log is the structured logger shared by every specialize package.
//
// It wraps [log/slog] with a fixed set of levels, adding [LevelTrace] below
// debug for the detailed account of parsing, checking and rendering, and
// with colorized handlers for terminals. The zero [Logger] discards
// everything, so components take a Logger by value and callers that do not
// care pass Logger{}.
//
// The default logger, reached through [Default] and the package-level
// functions, writes to standard error. Rendered files and dumped variables
// go to standard output, so the two streams never interleave.
//
//	log.Config(log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatText))
//
//	logger := log.Default().With(slog.String("environment", "prod"))
//	logger.TraceContext(ctx, "resolve complete", slog.Int("applied", 12))
//
// Levels and formats are named by the strings [Levels] and [Formats] yield,
// which are also the values accepted on the command line.
package log
