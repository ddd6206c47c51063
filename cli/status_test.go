package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ardnew/specialize/cli/cmd"
	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/render"
)

func TestExitStatus(t *testing.T) {
	diags := new(lang.Diagnostics)

	store := lang.NewStore()
	_ = store.ParseString(context.Background(), "oops\n", lang.WithDiagnostics(diags))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "diagnostics", err: diags.Err(), want: ExitInvalid},
		{name: "diagnostic", err: diags.All()[0], want: ExitInvalid},
		{name: "unknown environment", err: &lang.EnvironmentError{Name: "x"}, want: ExitInvalid},
		{name: "template", err: &render.FileError{File: "t", Message: "m"}, want: ExitInvalid},
		{name: "source", err: &render.SourceError{Path: "p"}, want: ExitInvalid},
		{name: "rename", err: render.ErrRenamePath.Wrapf("x"), want: ExitInvalid},
		{name: "override", err: cmd.ErrOverride.Wrap(errors.New(`"x"`)), want: ExitInvalid},
		{name: "open source", err: fmt.Errorf("load: %w", cmd.ErrOpenSource), want: ExitInvalid},
		{name: "usage", err: cmd.ErrUsage, want: ExitInvalid},
		{name: "read input", err: lang.ErrReadInput.Wrap(errors.New("eof")), want: ExitInvalid},
		{name: "no terminal", err: cmd.ErrNoTerminal, want: ExitFailure},
		{name: "other", err: errors.New("boom"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitStatus(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
