package orderspec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/ordertouch/internal/filelock"
)

// ErrOrderFileExists is returned by Create when the root already has an order file.
var ErrOrderFileExists = errors.New("order file already exists")

// Format renders lines as order file content, one per line with a trailing newline.
func Format(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// Write atomically replaces <rootPath>/.order with lines while holding the
// order file's lock.
func Write(rootPath string, lines []string) error {
	path := filepath.Join(rootPath, FileName)
	if err := filelock.LockAndWrite(path, Format(lines)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Create writes a new order file. Unless force is set it fails with
// ErrOrderFileExists when one is already present.
func Create(rootPath string, lines []string, force bool) error {
	path := filepath.Join(rootPath, FileName)

	return filelock.WithLock(path, func() error {
		if !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%w: %s", ErrOrderFileExists, path)
			}
		}
		if err := filelock.AtomicWrite(path, Format(lines)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	})
}

// Prepend moves entries to the top of <rootPath>/.order in the given order.
// Existing lines equal to one of the entries are removed first, so each entry
// appears once. A missing order file is created. Returns the new lines.
func Prepend(rootPath string, entries []string) ([]string, error) {
	path := filepath.Join(rootPath, FileName)

	var result []string
	err := filelock.WithLock(path, func() error {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		placed := make(map[string]bool, len(entries))
		for _, e := range entries {
			placed[e] = true
		}

		result = make([]string, 0, len(entries))
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if !seen[e] {
				result = append(result, e)
				seen[e] = true
			}
		}
		for _, line := range Parse(data).Lines {
			if !placed[line] {
				result = append(result, line)
			}
		}

		if err := filelock.AtomicWrite(path, Format(result)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
