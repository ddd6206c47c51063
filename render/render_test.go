package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/specialize/secret"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

func TestRenderString(t *testing.T) {
	vars := map[string]any{
		"a":     map[string]any{"b": int64(19), "c": "bar"},
		"hosts": []any{"x", "y"},
		"flag":  true,
	}

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{"field", "{{ .a.c }}", "bar"},
		{"number", "{{ .a.b }}", "19"},
		{"index", "{{ index .hosts 1 }}", "y"},
		{"range", "{{ range .hosts }}[{{ . }}]{{ end }}", "[x][y]"},
		{"condition", "{{ if .flag }}on{{ else }}off{{ end }}", "on"},
		{"trailing newline kept", "{{ .a.c }}\n", "bar\n"},
		{"json", "{{ toJson .a }}", `{"b":19,"c":"bar"}`},
		{"yaml", "{{ toYaml .a }}", "b: 19\nc: bar"},
		{"expr", `{{ expr "a.b + 1" }}`, "20"},
		{"expr builtin", `{{ expr "len(hosts)" }}`, "2"},
	}

	r := New(vars)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderString(context.Background(), "t", tt.template)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderString_Builtins(t *testing.T) {
	t.Setenv("GOHOSTOS", "plan9")
	t.Setenv("GOHOSTARCH", "amd64")
	t.Setenv("SPECIALIZE_TEST_VAR", "value")

	got, err := New(nil).RenderString(context.Background(), "t",
		`{{ (platform).OS }}/{{ (target).Arch }} {{ env "SPECIALIZE_TEST_VAR" }} {{ pathJoin "a" "b" }}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "plan9/x86_64 value " + filepath.Join("a", "b")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderString_MissingVariable(t *testing.T) {
	_, err := New(map[string]any{"a": map[string]any{}}).
		RenderString(context.Background(), "t.txt", "ok\n{{ .a.missing }}")

	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FileError, got %v", err)
	}

	if fe.Line != 0 || !strings.HasPrefix(err.Error(), "t.txt: error: ") {
		t.Errorf("expected runtime error form, got %q", err.Error())
	}

	if !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("expected error to name the missing key, got %q", err.Error())
	}

	if !errors.Is(err, ErrTemplate) {
		t.Error("expected ErrTemplate")
	}
}

func TestRenderString_SyntaxError(t *testing.T) {
	_, err := New(nil).RenderString(context.Background(), "t.txt", "line one\n{{ nosuchfunc }}\n")

	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FileError, got %v", err)
	}

	if fe.Line != 2 {
		t.Errorf("expected line 2, got %d", fe.Line)
	}

	if !strings.HasPrefix(err.Error(), "t.txt:2: ") || !strings.Contains(err.Error(), "nosuchfunc") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRenderString_RenameUnavailable(t *testing.T) {
	_, err := New(nil).RenderString(context.Background(), "t", `{{ rename "a" }}`)
	if err == nil || !strings.Contains(err.Error(), "rename") {
		t.Errorf("expected undefined rename function, got %v", err)
	}
}

func TestRenderString_Secrets(t *testing.T) {
	ctx := context.Background()
	tmpl := `{{ awsParameterStore "/db/password" }}`

	got, err := New(nil, WithSecrets(secret.Static{"/db/password": "hunter2"})).RenderString(ctx, "t", tmpl)
	if err != nil || got != "hunter2" {
		t.Errorf("expected hunter2, got %q (%v)", got, err)
	}

	_, err = New(nil, WithSecrets(secret.Static{})).RenderString(ctx, "t", tmpl)
	if err == nil || !strings.Contains(err.Error(),
		`Failed to retrieve value "/db/password" from parameter store with error: ParameterNotFound`) {
		t.Errorf("expected lookup failure, got %v", err)
	}

	_, err = New(nil).RenderString(ctx, "t", tmpl)
	if !errors.Is(err, secret.ErrNoProvider) {
		t.Errorf("expected ErrNoProvider, got %v", err)
	}
}

func TestRender_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.conf")
	writeFile(t, src, "port={{ .port }}\n")

	dst := filepath.Join(dir, "out") + string(filepath.Separator)

	err := New(map[string]any{"port": int64(8080)}).Render(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "out", "in.conf")); got != "port=8080\n" {
		t.Errorf("expected %q, got %q", "port=8080\n", got)
	}
}

func TestRender_DirectoryWithRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	writeFile(t, filepath.Join(src, "a.txt"), `{{ rename "a.txt" "b.txt" }}{{ .greeting }}`)
	writeFile(t, filepath.Join(src, "gone.txt"), `{{ rename "gone.txt" }}`)
	writeFile(t, filepath.Join(src, "tmp", "x.txt"), `{{ rename "tmp" }}x`)
	writeFile(t, filepath.Join(src, "keep", "y.txt"), `y`)
	writeFile(t, filepath.Join(dst, "sub", "old.txt"), "old")
	writeFile(t, filepath.Join(src, "z.txt"), `{{ rename "z.txt" "sub" }}z`)

	err := New(map[string]any{"greeting": "hello"}).Render(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, filepath.Join(dst, "b.txt")); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}

	if got := readFile(t, filepath.Join(dst, "sub")); got != "z" {
		t.Errorf("expected directory replaced by file, got %q", got)
	}

	for _, name := range []string{"a.txt", "gone.txt", "tmp", "z.txt"} {
		if _, err := os.Stat(filepath.Join(dst, name)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed, got %v", name, err)
		}
	}

	if got := readFile(t, filepath.Join(dst, "keep", "y.txt")); got != "y" {
		t.Errorf("expected %q, got %q", "y", got)
	}
}

func TestRender_RenameOutsideDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), `{{ rename "../a.txt" "b.txt" }}`)

	err := New(nil).Render(context.Background(), src, filepath.Join(dir, "dst"))
	if !errors.Is(err, ErrRenamePath) {
		t.Errorf("expected ErrRenamePath, got %v", err)
	}
}

func TestRender_MissingSource(t *testing.T) {
	err := New(nil).Render(context.Background(), filepath.Join(t.TempDir(), "nope"), "out")

	var se *SourceError
	if !errors.As(err, &se) {
		t.Errorf("expected *SourceError, got %v", err)
	}
}

func TestRenames_Add(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		names   []string
		wantErr error
	}{
		{"rename", "a.txt", []string{"b.txt"}, nil},
		{"delete", "a.txt", nil, nil},
		{"blank path", "  ", nil, ErrRenameSource},
		{"nested name", "a.txt", []string{"d/b.txt"}, ErrRenameName},
		{"blank name", "a.txt", []string{" "}, ErrRenameName},
		{"parent name", "a.txt", []string{".."}, ErrRenameName},
		{"two names", "a.txt", []string{"b", "c"}, ErrRenameName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Renames

			out, err := r.Add(tt.path, tt.names...)
			if out != "" {
				t.Errorf("expected empty output, got %q", out)
			}

			if tt.wantErr == nil {
				if err != nil || r.Len() != 1 {
					t.Errorf("expected one recorded operation, got %d (%v)", r.Len(), err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
