package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root is the base directory of one ordering pass.
type Root struct {
	Path string // Absolute directory path, without trailing separator
	Name string // Display name (base name of Path)
}

// NewRoot resolves path to an absolute directory and returns it as a Root.
// Returns an error if the path does not exist or is not a directory.
func NewRoot(path string) (Root, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Root{}, fmt.Errorf("failed to resolve root %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return Root{}, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return Root{}, fmt.Errorf("root is not a directory: %s", absPath)
	}

	return RootAt(absPath), nil
}

// RootAt builds a Root from an already absolute path without touching the filesystem.
func RootAt(absPath string) Root {
	clean := filepath.Clean(absPath)
	return Root{Path: clean, Name: filepath.Base(clean)}
}

// RootPath returns the root directory with a trailing separator.
func (r Root) RootPath() string {
	if strings.HasSuffix(r.Path, string(filepath.Separator)) {
		return r.Path
	}
	return r.Path + string(filepath.Separator)
}

// File returns the absolute path of a file directly inside the root.
func (r Root) File(name string) string {
	return filepath.Join(r.Path, name)
}
