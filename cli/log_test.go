package cli

import (
	"testing"

	"github.com/ardnew/specialize/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() {
		log.Config(
			log.WithLevel(log.DefaultLevel),
			log.WithFormat(log.DefaultFormat),
			log.WithTimeLayout(log.DefaultTimeLayout),
			log.WithCaller(false),
			log.WithPretty(true),
		)
	})

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "valued",
			args: []string{"render", "--log-level", "debug", "--log-format=json", "a.tmpl"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "time layout",
			args: []string{"--log-time-layout=kitchen"},
			want: logConfig{TimeLayout: "kitchen"},
		},
		{
			name: "value missing",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true},
		},
		{
			name: "switches",
			args: []string{"--log-caller", "--log-pretty=false"},
			want: logConfig{Caller: true},
		},
		{
			name: "negated",
			args: []string{"--no-log-caller=false", "--no-log-pretty"},
			want: logConfig{Caller: true},
		},
		{
			name: "malformed switch",
			args: []string{"--log-caller=maybe"},
			want: logConfig{},
		},
		{
			name: "other flags",
			args: []string{"-c", "x.env", "--level=debug", "--logcaller"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got logConfig

			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
