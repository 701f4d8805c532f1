// Package orderspec reads and edits a root's .order file.
//
// Each non-empty line is either a path (relative to the root unless absolute)
// to force-place, most important first, or a "(regex)" prefixed glob whose
// matches are deferred to the end of the alphabetic entries.
package orderspec

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/harrison/ordertouch/internal/models"
)

// FileName is the ordering file read from each root
const FileName = ".order"

var (
	// ErrNoOrderFile means the root exists but has no ordering file.
	ErrNoOrderFile = errors.New("order file not found")

	// ErrNoRoot means there is no root directory to read from.
	ErrNoRoot = errors.New("root not available")
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Parse splits order file content into trimmed lines. Lines that are empty
// after trimming are dropped so a whitespace-only line never resolves to the
// root itself. Line order is preserved; nothing is deduplicated or validated.
func Parse(data []byte) models.OrderList {
	raw := lineBreak.Split(string(data), -1)

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return models.OrderList{Lines: lines}
}

// Read loads <rootPath>/.order.
//
// The outcome is typed at the read: ErrNoRoot when rootPath is empty or does
// not exist, ErrNoOrderFile when only the order file is missing, and a wrapped
// I/O error otherwise.
func Read(fsys billy.Basic, rootPath string) (models.OrderList, error) {
	if rootPath == "" {
		return models.OrderList{}, ErrNoRoot
	}

	path := filepath.Join(rootPath, FileName)
	data, err := util.ReadFile(fsys, path)
	if err == nil {
		return Parse(data), nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		if _, statErr := fsys.Stat(rootPath); statErr != nil && errors.Is(statErr, fs.ErrNotExist) {
			return models.OrderList{}, fmt.Errorf("%w: %s", ErrNoRoot, rootPath)
		}
		return models.OrderList{}, fmt.Errorf("%w: %s", ErrNoOrderFile, path)
	}

	return models.OrderList{}, fmt.Errorf("failed to read %s: %w", path, err)
}

// ExtractRegexEntries returns the lines that start with the regex marker, marker kept.
func ExtractRegexEntries(lines []string) []string {
	return models.OrderList{Lines: lines}.RegexLines()
}

// PlainEntries returns the lines that do not start with the regex marker.
func PlainEntries(lines []string) []string {
	return models.OrderList{Lines: lines}.PlainLines()
}

// StripMarker removes the regex marker from a regex line.
func StripMarker(line string) string {
	return strings.TrimPrefix(line, models.RegexMarker)
}

// ResolvePlain prefixes relative entries with rootPath and leaves absolute ones untouched.
func ResolvePlain(entries []string, rootPath string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if filepath.IsAbs(entry) {
			out = append(out, entry)
			continue
		}
		out = append(out, filepath.Join(rootPath, entry))
	}
	return out
}
