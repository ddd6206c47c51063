package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/specialize/pkg"
)

// baseConfig is the base name of the configuration file, and the name of the
// environment in it that holds flag defaults.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cacheDir returns the directory for transient files such as REPL history
// and profiles.
func cacheDir() string { return pkg.CacheDir() }

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
