package config

import (
	"os"
	"path/filepath"
	"strings"
)

// baseDir is where relative log and storage paths are anchored: the working
// directory, else the executable's directory.
func baseDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	if exe, err := os.Executable(); err == nil && exe != "" {
		return filepath.Dir(exe)
	}
	return "."
}

// resolveDir makes dir absolute, using fallback when dir is blank.
func resolveDir(dir, fallback string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = fallback
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir(), dir)
	}
	return filepath.Clean(dir)
}
