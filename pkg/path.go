package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ConfigDirEnv and CacheDirEnv name environment variables that, when set,
// replace the directories [ConfigDir] and [CacheDir] would otherwise choose.
const (
	ConfigDirEnv = "SPECIALIZE_CONFIG_DIR"
	CacheDirEnv  = "SPECIALIZE_CACHE_DIR"
)

// ConfigDir returns the directory holding the user configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(ConfigDirEnv, os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(CacheDirEnv, os.UserCacheDir, ".cache")
})

// userDir resolves a per-user directory: the variable env if set, else
// Name under the platform directory, else Name under hidden in the home
// directory, else Name under the working directory.
func userDir(env string, platform func() (string, error), hidden string) string {
	if dir := strings.TrimSpace(os.Getenv(env)); dir != "" {
		return filepath.Clean(dir)
	}

	if dir, err := platform(); err == nil {
		return filepath.Join(dir, Name)
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, hidden, Name)
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, Name)
	}

	return Name
}
