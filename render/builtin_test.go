package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHostTarget(t *testing.T) {
	tests := []struct {
		os, arch, goarm string
		want            Target
	}{
		{"linux", "amd64", "", Target{"linux", "x86_64"}},
		{"linux", "386", "", Target{"linux", "i386"}},
		{"linux", "arm64", "", Target{"linux", "aarch64"}},
		{"darwin", "arm64", "", Target{"darwin", "arm64"}},
		{"linux", "arm", "7", Target{"linux", "armv7"}},
		{"linux", "arm", "6,softfloat", Target{"linux", "armv6"}},
		{"linux", "arm", "8", Target{"linux", "arm"}},
		{"linux", "mipsle", "", Target{"linux", "mipsel"}},
		{"freebsd", "riscv64", "", Target{"freebsd", "riscv64"}},
	}

	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch+tt.goarm, func(t *testing.T) {
			t.Setenv("GOHOSTOS", tt.os)
			t.Setenv("GOHOSTARCH", tt.arch)
			t.Setenv("GOARM", tt.goarm)

			if got := hostTarget(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}

			if got := hostPlatform(); got != (Target{tt.os, tt.arch}) {
				t.Errorf("expected platform %s/%s, got %+v", tt.os, tt.arch, got)
			}
		})
	}
}

func TestMung(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	list := func(items ...string) string { return strings.Join(items, string(os.PathListSeparator)) }

	if got, want := mungPrefix(list("/usr/bin", "/bin"), "/bin"), list("/bin", "/usr/bin"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := mungPrefixIf(list(missing, dir), fileIsDir, dir, missing); got != dir {
		t.Errorf("expected %q, got %q", dir, got)
	}
}

func TestFileAndPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")

	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"exists file", fileExists(file), true},
		{"exists missing", fileExists(filepath.Join(dir, "nope")), false},
		{"isDir dir", fileIsDir(dir), true},
		{"isDir file", fileIsDir(file), false},
		{"rel", pathRel(dir, file), "f"},
		{"join", pathJoin("a", "b", "c"), filepath.Join("a", "b", "c")},
		{"abs", filepath.IsAbs(pathAbs("x")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestEnviron(t *testing.T) {
	t.Setenv("SPECIALIZE_BUILTIN_TEST", "a=b")

	env := environ()

	if got := env("SPECIALIZE_BUILTIN_TEST"); got != "a=b" {
		t.Errorf("expected a=b, got %q", got)
	}

	if got := env("SPECIALIZE_UNSET_FOR_TEST"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
