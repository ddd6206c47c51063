package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	sourcesKey struct{}
	outputKey  struct{}
)

// WithSources returns a new context.Context carrying the paths of the
// environment files named on the command line.
func WithSources(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, paths)
}

func sourcesFrom(ctx context.Context) []string {
	paths, _ := ctx.Value(sourcesKey{}).([]string)

	return paths
}

// WithOutput returns a new context.Context whose commands write their output
// to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// source is one opened environment file.
type source struct {
	name string
	io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSources opens the environment files at paths in order.
//
// A file named more than once, by any path, is opened only the first time.
// All occurrences of "-" are replaced with a single stdin source placed last
// so it reads after all regular files.
func openSources(paths []string) (srcs []source, err error) {
	defer func() {
		if err != nil {
			closeSources(srcs)
			srcs = nil
		}
	}()

	seen := make(map[fileKey]struct{})
	hasStdin := false

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		file, ok, err := openUniqueFile(path, seen)
		if err != nil {
			return srcs, ErrOpenSource.With(slog.String("file", path)).Wrap(err)
		}

		if ok {
			srcs = append(srcs, source{name: path, ReadCloser: file})
		}
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource, ReadCloser: io.NopCloser(os.Stdin)})
	}

	return srcs, nil
}

func closeSources(srcs []source) {
	for _, src := range srcs {
		_ = src.Close()
	}
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns false without error if the file is a duplicate.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// load parses every environment file in ctx into a new store. Syntax errors
// and redefinitions are added to diags; the returned error reports only
// files that could not be opened or read.
func load(ctx context.Context, diags *lang.Diagnostics) (*lang.Store, error) {
	srcs, err := openSources(sourcesFrom(ctx))
	if err != nil {
		return nil, err
	}

	defer closeSources(srcs)

	store := lang.NewStore()

	for _, src := range srcs {
		err := store.ParseReader(ctx, src,
			lang.WithFile(src.name),
			lang.WithDiagnostics(diags),
			lang.WithLogger(log.Default()),
		)
		if err != nil {
			return nil, err
		}
	}

	log.DebugContext(ctx, "environments loaded",
		slog.Int("file_count", len(srcs)),
		slog.Int("environment_count", store.Len()),
		slog.Int("diagnostic_count", diags.Len()),
	)

	return store, nil
}

// parseOverrides splits KEY=VALUE arguments.
func parseOverrides(args []string) ([]lang.Override, error) {
	overrides := make([]lang.Override, 0, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, ErrOverride.Wrap(fmt.Errorf("%q", arg))
		}

		overrides = append(overrides, lang.Override{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}

	return overrides, nil
}

// prepare loads the environment files and verifies that every environment
// in names exists. It then calls overlay (if not nil) to add environments of
// its own and checks the whole store. Any diagnostic fails preparation.
func prepare(
	ctx context.Context,
	names []string,
	overlay func(*lang.Store, *lang.Diagnostics),
) (*lang.Store, error) {
	diags := new(lang.Diagnostics)

	store, err := load(ctx, diags)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if store.Has(name) {
			continue
		}

		if err := diags.Err(); err != nil {
			return nil, err
		}

		return nil, &lang.EnvironmentError{Name: name}
	}

	if overlay != nil {
		overlay(store, diags)
	}

	store.Check(ctx, lang.WithDiagnostics(diags), lang.WithLogger(log.Default()))

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// variables resolves env (if not empty) with the KEY=VALUE overrides in keys
// applied on top of it.
func variables(ctx context.Context, env string, keys []string) (map[string]any, error) {
	overrides, err := parseOverrides(keys)
	if err != nil {
		return nil, err
	}

	var names []string
	if env != "" {
		names = []string{env}
	}

	store, err := prepare(ctx, names, func(s *lang.Store, d *lang.Diagnostics) {
		s.Overlay(env, overrides, d)
	})
	if err != nil {
		return nil, err
	}

	return store.Resolve(ctx, lang.OverlayName, lang.WithLogger(log.Default())), nil
}

// encode writes v to the command output.
func encode(ctx context.Context, v any, format string, indent int) error {
	enc, err := lang.ParseEncoding(format)
	if err != nil {
		return err
	}

	return lang.Encode(ctx, outputFrom(ctx), v, enc, indent)
}
