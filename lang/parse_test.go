package lang

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseString_Environments(t *testing.T) {
	input := strings.Join([]string{
		"# leading comment",
		"",
		"base:",
		"  a.a = \"foo\"",
		"  a.b = 12",
		"   # indented comment",
		"env ( base , other ):",
		"  a.b = 19",
		"other:",
		"\tc = true",
	}, "\n")

	store := NewStore()
	if err := store.ParseString(context.Background(), input, WithFile("test.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := store.Names(), []string{"base", "env", "other"}; !slices.Equal(got, want) {
		t.Errorf("expected names %v, got %v", want, got)
	}

	env, ok := store.Get("env")
	if !ok {
		t.Fatal("expected environment env")
	}

	if want := []string{"base", "other"}; !slices.Equal(env.Parents, want) {
		t.Errorf("expected parents %v, got %v", want, env.Parents)
	}

	if loc := env.Location(); loc.File != "test.env" || loc.Line != 7 {
		t.Errorf("expected location test.env:7, got %v", loc)
	}

	base, _ := store.Get("base")
	if len(base.Values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(base.Values))
	}

	if kv := base.Values[1]; kv.Key.String() != "a.b" || kv.Value != int64(12) || kv.Line != 5 {
		t.Errorf("expected a.b = 12 at line 5, got %v = %v at line %d", kv.Key, kv.Value, kv.Line)
	}
}

func TestParseString_Literals(t *testing.T) {
	input := "e:\n" +
		"  s = \"two words\"\n" +
		"  empty = \"\"\n" +
		"  i = 42\n" +
		"  f = 1.5\n" +
		"  g = 3.\n" +
		"  t = true\n" +
		"  n = false\n"

	store := NewStore()
	if err := store.ParseString(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env, _ := store.Get("e")

	tests := []struct {
		key  string
		want any
	}{
		{"s", "two words"},
		{"empty", ""},
		{"i", int64(42)},
		{"f", 1.5},
		{"g", 3.0},
		{"t", true},
		{"n", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			kv, ok := env.Lookup(ParseKey(tt.key))
			if !ok {
				t.Fatalf("expected key %q", tt.key)
			}

			if kv.Value != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, kv.Value)
			}
		})
	}
}

func TestParseString_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"assignment before header", "  a = 1\n", `f:1: Syntax error: "  a = 1"`},
		{"header without colon", "e\n", `f:1: Syntax error: "e"`},
		{"indented header", "e:\n  f:\n", `f:2: Syntax error: "  f:"`},
		{"unquoted string", "e:\n  a = foo\n", `f:2: Syntax error: "  a = foo"`},
		{"single quotes", "e:\n  a = 'foo'\n", `f:2: Syntax error: "  a = 'foo'"`},
		{"negative number", "e:\n  a = -1\n", `f:2: Syntax error: "  a = -1"`},
		{"leading index", "e:\n  0.a = 1\n", `f:2: Syntax error: "  0.a = 1"`},
		{"bad parent list", "e (a,):\n", `f:1: Syntax error: "e (a,):"`},
		{"trailing whitespace trimmed", "e:\n  a = \n", `f:2: Syntax error: "  a ="`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStore().ParseString(context.Background(), tt.input, WithFile("f"))
			if err == nil {
				t.Fatal("expected error")
			}

			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestParseString_StrictStopsAtFirstSyntaxError(t *testing.T) {
	store := NewStore()

	err := store.ParseString(context.Background(), "a:\nbad\nb:\nworse\n", WithFile("f"))
	if err == nil || err.Error() != `f:2: Syntax error: "bad"` {
		t.Fatalf("expected first syntax error, got %v", err)
	}

	if store.Has("b") {
		t.Error("expected parsing to stop before environment b")
	}
}

func TestParseString_Accumulates(t *testing.T) {
	input := "a:\nbad\n  x = 1\n  x = 2\nb:\nworse\n"

	store := NewStore()
	diags := new(Diagnostics)

	err := store.ParseString(context.Background(), input, WithFile("f"), WithDiagnostics(diags))
	if err != nil {
		t.Fatalf("expected nil error when accumulating, got %v", err)
	}

	want := []string{
		`f:2: Syntax error: "bad"`,
		`f:4: Redefinition of value "x"`,
		`f:6: Syntax error: "worse"`,
	}
	if got := diags.Strings(); !slices.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}

	if !store.Has("b") {
		t.Error("expected environment b after accumulated errors")
	}
}

func TestParseString_StrictReturnsRedefinitions(t *testing.T) {
	err := NewStore().ParseString(context.Background(), "a:\n  x = 1\n  x = 2\n", WithFile("f"))
	if err == nil {
		t.Fatal("expected error")
	}

	var diags *Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected *Diagnostics, got %T", err)
	}

	if !errors.Is(err, ErrValueRedefinition) {
		t.Errorf("expected ErrValueRedefinition, got %v", err)
	}
}

func TestParseString_Continuation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	diags := new(Diagnostics)

	files := []struct {
		name string
		text string
	}{
		{"one.env", "p:\nq:\ne (p):\n  a = 1\n"},
		{"two.env", "e:\n  b = 2\ne (p):\n  c = 3\ne (q):\n  d = 4\n"},
	}

	for _, f := range files {
		if err := store.ParseString(ctx, f.text, WithFile(f.name), WithDiagnostics(diags)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []string{`two.env:5: Redefinition of environment "e"`}
	if got := diags.Strings(); !slices.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}

	env, _ := store.Get("e")
	if len(env.Values) != 4 {
		t.Errorf("expected 4 values across continuations, got %d", len(env.Values))
	}

	if !slices.Equal(env.Parents, []string{"p"}) {
		t.Errorf("expected parents [p], got %v", env.Parents)
	}
}

func TestParseString_Redefinition(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
		deps []string
	}{
		{
			name: "parents after parentless header",
			text: "base:\n  x = 1\nenv:\n  a = 1\nenv (base):\n  b = 2\n",
			want: []string{`f:5: Redefinition of environment "env"`},
		},
		{
			name: "different parents",
			text: "a:\nb:\nenv (a):\nenv (b):\n",
			want: []string{`f:4: Redefinition of environment "env"`},
			deps: []string{"a"},
		},
		{
			name: "same parents repeated",
			text: "a:\nenv (a):\n  x = 1\nenv (a):\n  y = 2\n",
			deps: []string{"a"},
		},
		{
			name: "parentless repeat",
			text: "a:\nenv (a):\nenv:\n  y = 2\n",
			deps: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			diags := new(Diagnostics)

			err := store.ParseString(context.Background(), tt.text, WithFile("f"), WithDiagnostics(diags))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := diags.Strings(); !slices.Equal(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}

			env, _ := store.Get("env")
			if !slices.Equal(env.Parents, tt.deps) {
				t.Errorf("expected parents %v, got %v", tt.deps, env.Parents)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	store := NewStore()

	err := store.ParseReader(context.Background(), strings.NewReader("e:\n  a = 1\n"), WithFile("r"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !store.Has("e") {
		t.Error("expected environment e")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReader_ReadError(t *testing.T) {
	err := NewStore().ParseReader(context.Background(), failingReader{}, WithFile("r"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestEnvironment_String(t *testing.T) {
	store := mustParse(t, "a:\n  x = 1\nb:\nc (a, b):\n  x = 2\n  y = 3\n")

	want := []string{
		"a: 1 value",
		"b: 0 values",
		"c (a, b): 2 values",
	}

	var got []string
	for env := range store.All() {
		got = append(got, env.String())
	}

	if !slices.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}
