// Package cli contains the command line interface for specialize.
//
// # Usage
//
// Without a subcommand, specialize renders templates:
//
//	specialize -c base.env -c site.env -e prod -k tls.enabled=true templates/ out/
//
// Environment files are given with -c and read in order; '-' reads standard
// input after every other file. A file named twice is read once.
//
// # Commands
//
//   - render SRC DST: render a template file or directory (default)
//   - check: report every problem in the environment files
//   - list: print each environment with its parents and value count
//   - dump ENV: print the variables of an environment as YAML, JSON or TOML
//   - diff ENV1 ENV2: print a line diff of two environments' variables
//   - repl: evaluate expressions against an environment interactively
//   - init: write the current flag values to the configuration file
//
// # Configuration File
//
// Flag defaults are read from the user configuration directory, first from
// config.json and then from config, which is written in the environment
// format. The environment named config in that file supplies the defaults
// ([resolve]); flag names use underscores in place of hyphens:
//
//	config:
//	  log_level = "debug"
//	  log_pretty = false
//
// SPECIALIZE_CONFIG_DIR and SPECIALIZE_CACHE_DIR override the configuration
// and cache directories.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output (default when standard error is a terminal)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Exit Status
//
// [ExitStatus] maps the error returned by [Run] to 0 on success, 2 for
// problems in the environment files, overrides or templates, and 1 for
// anything else.
package cli
