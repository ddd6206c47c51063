package render

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Job is one template file and the file it renders to.
type Job struct {
	Src string
	Dst string
}

// Plan is the set of files rendered for one source and destination.
type Plan struct {
	// Dir is set when the source is a directory, in which case the
	// destination is a directory too.
	Dir  bool
	Jobs []Job
}

// NewPlan maps src to destination files beneath dst.
//
// A file source renders to dst, or to dst/base(src) when dst ends in a path
// separator. A directory source renders every file beneath it, in lexical
// order, to the same relative path beneath dst.
func NewPlan(src, dst string) (Plan, error) {
	if dst == "" {
		return Plan{}, ErrDestination.Wrapf("empty destination path")
	}

	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Plan{}, &SourceError{Path: src}
		}

		return Plan{}, err
	}

	if !info.IsDir() {
		if strings.HasSuffix(dst, "/") || strings.HasSuffix(dst, string(filepath.Separator)) {
			dst = filepath.Join(dst, filepath.Base(src))
		}

		return Plan{Jobs: []Job{{Src: src, Dst: dst}}}, nil
	}

	plan := Plan{Dir: true}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		plan.Jobs = append(plan.Jobs, Job{Src: path, Dst: filepath.Join(dst, rel)})

		return nil
	})

	return plan, err
}
