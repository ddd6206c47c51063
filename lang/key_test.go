package lang

import (
	"slices"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		input string
		want  Key
	}{
		{"a", Key{Field("a")}},
		{"a.b", Key{Field("a"), Field("b")}},
		{"a.0", Key{Field("a"), Index(0)}},
		{"a.10.b_2", Key{Field("a"), Index(10), Field("b_2")}},
		{"a.007", Key{Field("a"), Index(7)}},
		{"a.99999999999999999999", Key{Field("a"), Field("99999999999999999999")}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseKey(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKey_String(t *testing.T) {
	if got := ParseKey("a.007.b").String(); got != "a.7.b" {
		t.Errorf("expected %q, got %q", "a.7.b", got)
	}
}

func TestKey_Compare(t *testing.T) {
	keys := []Key{
		ParseKey("b"),
		ParseKey("a.x"),
		ParseKey("a.10"),
		ParseKey("a"),
		ParseKey("a.2"),
		ParseKey("a.b.c"),
		ParseKey("a.b"),
	}

	slices.SortFunc(keys, Key.Compare)

	got := make([]string, len(keys))
	for i, k := range keys {
		got[i] = k.String()
	}

	want := []string{"a", "a.2", "a.10", "a.b", "a.b.c", "a.x", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSegment(t *testing.T) {
	f, i := Field("name"), Index(3)

	if f.IsIndex() || f.Index() != -1 || f.Name() != "name" {
		t.Errorf("unexpected field segment %#v", f)
	}

	if !i.IsIndex() || i.Index() != 3 || i.Name() != "" {
		t.Errorf("unexpected index segment %#v", i)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"false", false},
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"`, ""},
		{"0", int64(0)},
		{"12", int64(12)},
		{"1.25", 1.25},
		{"7.", 7.0},
		{"9223372036854775807", int64(9223372036854775807)},
		{"-9223372036854775808", int64(-9223372036854775808)},
		{"99999999999999999999", "99999999999999999999"},
		{"-9223372036854775809", "-9223372036854775809"},
		{"1e400", "1e400"},
		{"other", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseValue(tt.input); got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
