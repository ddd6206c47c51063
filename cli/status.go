package cli

import (
	"errors"

	"github.com/ardnew/specialize/cli/cmd"
	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/render"
)

// Exit statuses returned by [ExitStatus].
const (
	ExitOK      = 0
	ExitFailure = 1 // unexpected failure
	ExitInvalid = 2 // invalid configuration, arguments or templates
)

// ExitStatus maps an error returned by [Run] to a process exit status.
//
// Problems with the user's input (diagnostics, unknown environments, bad
// overrides, unreadable environment files, template and rename failures) are
// [ExitInvalid]; their messages are meant to be printed verbatim. Anything
// else is [ExitFailure].
func ExitStatus(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		diags *lang.Diagnostics
		diag  *lang.Diagnostic
		file  *render.FileError
		src   *render.SourceError
	)

	switch {
	case errors.As(err, &diags),
		errors.As(err, &diag),
		errors.As(err, &file),
		errors.As(err, &src),
		errors.Is(err, lang.ErrUnknownEnvironment),
		errors.Is(err, lang.ErrReadInput),
		errors.Is(err, cmd.ErrOpenSource),
		errors.Is(err, cmd.ErrOverride),
		errors.Is(err, cmd.ErrUsage),
		errors.Is(err, render.ErrRenamePath),
		errors.Is(err, render.ErrRename):
		return ExitInvalid
	}

	return ExitFailure
}
