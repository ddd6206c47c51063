package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("no such file")
	err := ErrOpenSource.With(slog.String("file", "a.env")).Wrap(cause)

	tests := []struct {
		name   string
		target error
		want   bool
	}{
		{"own sentinel", ErrOpenSource, true},
		{"cause", cause, true},
		{"other sentinel", ErrUsage, false},
		{"derived target", ErrOpenSource.Wrap(cause), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(fmt.Errorf("load: %w", err), tt.target); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if want := "open environment file: no such file"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	if ErrOpenSource.Error() != "open environment file" || len(ErrOpenSource.attrs) != 0 {
		t.Errorf("expected sentinel unchanged, got %q %v", ErrOpenSource.Error(), ErrOpenSource.attrs)
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrUsage.With(slog.String("command", "render")).Wrap(errors.New("missing DST"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "invalid usage", "cause": "missing DST", "command": "render"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("expected %s=%q, got %q", k, v, got[k])
		}
	}
}
