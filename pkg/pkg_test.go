package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatal(err)
	}

	if want := strings.TrimSpace(string(buf)); strings.TrimSpace(Version) != want {
		t.Errorf("expected %q, got %q", want, Version)
	}
}

func TestAuthor(t *testing.T) {
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("expected Author[%d] to have a name or email", i)
		}
	}
}

func TestUserDir(t *testing.T) {
	failing := func() (string, error) { return "", errors.New("unset") }
	platform := func() (string, error) { return "/platform", nil }

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name     string
		env      string
		platform func() (string, error)
		want     string
	}{
		{"env wins", "/custom/dir/", platform, "/custom/dir"},
		{"blank env ignored", "  ", platform, filepath.Join("/platform", Name)},
		{"platform", "", platform, filepath.Join("/platform", Name)},
		{"home fallback", "", failing, filepath.Join(home, ".hidden", Name)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPECIALIZE_TEST_DIR", tt.env)

			if got := userDir("SPECIALIZE_TEST_DIR", tt.platform, ".hidden"); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
