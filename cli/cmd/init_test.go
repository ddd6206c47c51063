package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/specialize/lang"
)

// initContext parses args for a CLI with a few flags of different types and
// returns a context for running [Init] against the config file at confPath.
func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli struct {
		Verbose bool     `help:"Enable verbose output"`
		Output  string   `help:"Output file"`
		Count   int      `help:"Number of items"`
		Ratio   float64  `help:"Ratio"`
		Tags    []string `help:"Tags"`
		Offset  int      `help:"Negative values are skipped"`
		Secret  string   `hidden:""`
	}

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create new config"},
		{name: "overwrite existing with force", force: true, exists: true},
		{name: "fail without force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--verbose", "--count=5")

			err := (&Init{Force: tt.force}).Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			// The generated file must be a valid environment file.
			store := lang.NewStore()
			if err := store.ParseString(ctx, string(content), lang.WithFile(confPath)); err != nil {
				t.Fatalf("generated config does not parse: %v", err)
			}

			if !store.Has(ConfigIdentifier) {
				t.Fatalf("expected environment %q in %q", ConfigIdentifier, content)
			}

			vars := store.Resolve(ctx, ConfigIdentifier)
			if vars["verbose"] != true || vars["count"] != int64(5) {
				t.Errorf("expected verbose and count, got %v", vars)
			}
		})
	}
}

func TestInitBuildConfig(t *testing.T) {
	ctx := initContext(t, "unused",
		"--output=out.txt", "--ratio=0.5", "--tags=a,b", "--offset=-1", "--secret=s")

	got := (&Init{}).buildConfig(ctx)

	want := `config:
  verbose = false
  output = "out.txt"
  count = 0
  ratio = 0.5
  tags.0 = "a"
  tags.1 = "b"
`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestInitWithInvalidPath(t *testing.T) {
	ctx := initContext(t, filepath.Join(t.TempDir(), "missing", "config"))

	if err := (&Init{}).Run(ctx); !errors.Is(err, ErrWriteConfig) {
		t.Errorf("expected ErrWriteConfig, got %v", err)
	}
}

func TestAssignments(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "nil", value: nil, want: nil},
		{name: "bool", value: true, want: []string{"k = true"}},
		{name: "string", value: "x y", want: []string{`k = "x y"`}},
		{name: "empty string", value: "", want: nil},
		{name: "quoted string", value: `a"b`, want: nil},
		{name: "int", value: 3, want: []string{"k = 3"}},
		{name: "negative int", value: -3, want: nil},
		{name: "uint", value: uint8(7), want: []string{"k = 7"}},
		{name: "float", value: 2.0, want: []string{"k = 2"}},
		{name: "list", value: []int{4, 5}, want: []string{"k.0 = 4", "k.1 = 5"}},
		{name: "list with bad item", value: []string{"a", ""}, want: nil},
		{name: "stringer", value: lang.EncodingJSON, want: []string{`k = "json"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assignments("k", tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
