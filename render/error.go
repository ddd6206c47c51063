package render

import (
	"io/fs"
	"strconv"

	"github.com/ardnew/specialize/pkg"
)

var (
	ErrTemplate     = pkg.MakeErrorf("template error")
	ErrExprCompile  = pkg.MakeErrorf("compile expression")
	ErrExprEvaluate = pkg.MakeErrorf("evaluate expression")
	ErrRenamePath   = pkg.MakeErrorf("rename invalid path")
	ErrRenameSource = pkg.MakeErrorf("rename invalid source path")
	ErrRenameName   = pkg.MakeErrorf("rename invalid destination name")
	ErrRename       = pkg.MakeErrorf("rename error")
	ErrDestination  = pkg.MakeErrorf("invalid destination")
)

// SourceError reports a template source path that does not exist.
type SourceError struct {
	Path string
}

func (e *SourceError) Error() string {
	return `no such file or directory "` + e.Path + `"`
}

// Is makes SourceError match [fs.ErrNotExist].
func (e *SourceError) Is(target error) bool { return target == fs.ErrNotExist }

// FileError reports a failure while rendering one template file.
// Line is set for template syntax errors only.
type FileError struct {
	File    string
	Line    int
	Message string
	Err     error
}

// Error returns "file:line: message" for syntax errors and
// "file: error: message" otherwise.
func (e *FileError) Error() string {
	if e.Line > 0 {
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Message
	}

	return e.File + ": error: " + e.Message
}

func (e *FileError) Unwrap() error { return e.Err }
