package render

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/specialize/log"
)

// rename is one recorded rename or delete of a rendered path.
type rename struct {
	path   string // relative to the destination directory
	name   string // new base name; empty deletes path
	delete bool
}

// Renames records rename and delete operations requested by templates and
// applies them once every file is rendered.
type Renames struct {
	ops []rename
}

// Add records a rename of path to the sibling name, or a delete of path when
// name is omitted. It returns "" so that templates may call it inline.
func (r *Renames) Add(path string, name ...string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrRenameSource.Wrapf("%s", quote(path))
	}

	op := rename{path: strings.TrimSpace(path), delete: true}

	switch len(name) {
	case 0:
		// Delete.

	case 1:
		n := strings.TrimSpace(name[0])
		if !validName(n) {
			return "", ErrRenameName.Wrapf("%s", quote(name[0]))
		}

		op.name, op.delete = n, false

	default:
		return "", ErrRenameName.Wrapf("expected at most one name, got %d", len(name))
	}

	r.ops = append(r.ops, op)

	return "", nil
}

// Len returns the number of recorded operations.
func (r *Renames) Len() int {
	if r == nil {
		return 0
	}

	return len(r.ops)
}

// Apply performs the recorded operations in order beneath the directory dst.
// Every path must name something inside dst. Renaming onto an existing
// directory first removes that directory unless it is the path being renamed.
func (r *Renames) Apply(ctx context.Context, dst string, logger log.Logger) error {
	for _, op := range r.ops {
		path, ok := within(dst, op.path)
		if !ok {
			return ErrRenamePath.Wrapf("%s", quote(op.path))
		}

		if op.delete {
			logger.DebugContext(ctx, "delete", slog.String("path", path))

			if err := remove(path); err != nil {
				return ErrRename.Wrap(err)
			}

			continue
		}

		target := filepath.Join(filepath.Dir(path), op.name)

		if info, err := os.Stat(target); err == nil && info.IsDir() {
			if src, err := os.Stat(path); err != nil || !os.SameFile(src, info) {
				if err := os.RemoveAll(target); err != nil {
					return ErrRename.Wrap(err)
				}
			}
		}

		logger.DebugContext(ctx, "rename",
			slog.String("path", path),
			slog.String("target", target),
		)

		if err := os.Rename(path, target); err != nil {
			return ErrRename.Wrap(err)
		}
	}

	return nil
}

// within joins rel to dir and reports whether the result is strictly inside
// dir.
func within(dir, rel string) (string, bool) {
	path := filepath.Join(dir, rel)

	r, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil || r == "." || r == ".." ||
		strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return path, false
	}

	return path, true
}

// remove deletes path, recursively if it is a directory. Unlike
// [os.RemoveAll], a missing path is an error.
func remove(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return os.RemoveAll(path)
	}

	return os.Remove(path)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/`+string(filepath.Separator))
}

func quote(s string) string { return `"` + s + `"` }
