package render

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Target is an operating system and architecture pair.
type Target struct {
	OS   string
	Arch string
}

// gnuArch maps Go architecture names to GNU toolchain triplet names where
// they differ.
var gnuArch = map[string]string{
	"386":    "i386",
	"amd64":  "x86_64",
	"arm64":  "aarch64",
	"mipsle": "mipsel",
}

// hostPlatform returns the host in Go naming, honoring GOHOSTOS/GOOS and
// GOHOSTARCH/GOARCH so templates can be rendered for another machine.
func hostPlatform() Target {
	return Target{
		OS:   firstEnv(runtime.GOOS, "GOHOSTOS", "GOOS"),
		Arch: firstEnv(runtime.GOARCH, "GOHOSTARCH", "GOARCH"),
	}
}

// hostTarget returns the host in GNU toolchain naming.
func hostTarget() Target {
	t := hostPlatform()

	switch {
	case t.Arch == "arm64" && t.OS == "darwin":
		// Apple keeps arm64.

	case t.Arch == "arm":
		switch v, _, _ := strings.Cut(os.Getenv("GOARM"), ","); v {
		case "5", "6", "7":
			t.Arch = "armv" + v
		}

	default:
		if gnu, ok := gnuArch[t.Arch]; ok {
			t.Arch = gnu
		}
	}

	return t
}

func firstEnv(fallback string, names ...string) string {
	for _, name := range names {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
	}

	return fallback
}

func hostname() string {
	name, _ := os.Hostname()

	return name
}

func workingDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func pathAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return path
}

func pathJoin(elem ...string) string { return filepath.Join(elem...) }

// pathRel returns to relative to from, both made absolute first, or the two
// joined when no relative path exists.
func pathRel(from, to string) string {
	if rel, err := filepath.Rel(pathAbs(from), pathAbs(to)); err == nil {
		return rel
	}

	return filepath.Join(from, to)
}

// mungPrefix puts prefix in front of the PATH-style list subject, dropping
// later duplicates.
func mungPrefix(subject string, prefix ...string) string {
	return mungList(subject, nil, prefix)
}

// mungPrefixIf is like mungPrefix but keeps only the items keep accepts.
func mungPrefixIf(subject string, keep func(string) bool, prefix ...string) string {
	return mungList(subject, keep, prefix)
}

func mungList(subject string, keep func(string) bool, prefix []string) string {
	opts := []mung.Option[mung.Config]{
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	}

	if keep != nil {
		opts = append(opts, mung.WithFilter(keep))
	}

	return mung.Make(opts...).String()
}

// environ returns the process environment as a lookup function. Unset
// variables read as "".
func environ() func(string) string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return func(key string) string { return env[key] }
}

//nolint:gochecknoglobals
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"platform": hostPlatform(),
		"target":   hostTarget(),
		"hostname": hostname(),
		"cwd":      workingDir,
		"file": map[string]any{
			"exists": fileExists,
			"isDir":  fileIsDir,
		},
		"path": map[string]any{
			"abs":  pathAbs,
			"join": pathJoin,
			"rel":  pathRel,
		},
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

// Builtins returns a copy of the names an expression can use besides its
// variables and env.
func Builtins() map[string]any { return maps.Clone(builtins()) }

// BuiltinKeys returns the sorted top-level builtin names, "env" included.
func BuiltinKeys() []string {
	return slices.Sorted(maps.Keys(Env(nil)))
}

// BuiltinLookup returns the sorted member names of the builtin namespace at
// the dotted path, or nil if the path names something else. The path "env"
// lists the process environment and the empty path lists [BuiltinKeys].
func BuiltinLookup(path string) []string {
	switch path {
	case "":
		return BuiltinKeys()

	case "env":
		var names []string

		for _, kv := range os.Environ() {
			if k, _, ok := strings.Cut(kv, "="); ok {
				names = append(names, k)
			}
		}

		slices.Sort(names)

		return slices.Compact(names)
	}

	var node any = builtins()

	for name := range strings.SplitSeq(path, ".") {
		ns, ok := node.(map[string]any)
		if !ok {
			return nil
		}

		if node, ok = ns[name]; !ok {
			return nil
		}
	}

	if ns, ok := node.(map[string]any); ok {
		return slices.Sorted(maps.Keys(ns))
	}

	return nil
}
