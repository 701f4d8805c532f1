package fileutil

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/harrison/ordertouch/internal/models"
)

// Matcher decides whether an absolute path is excluded from discovery.
type Matcher interface {
	Match(path string, isDir bool) bool
}

// EntrySet accumulates discovered entries keyed by absolute path.
type EntrySet struct {
	kinds map[string]models.EntryKind
}

// NewEntrySet creates an empty EntrySet.
func NewEntrySet() *EntrySet {
	return &EntrySet{kinds: make(map[string]models.EntryKind)}
}

// Add records an entry. Adding the same path twice keeps a single entry.
func (s *EntrySet) Add(path string, kind models.EntryKind) {
	s.kinds[path] = kind
}

// Has reports whether path was discovered.
func (s *EntrySet) Has(path string) bool {
	_, ok := s.kinds[path]
	return ok
}

// Kind returns the kind of a discovered path.
func (s *EntrySet) Kind(path string) (models.EntryKind, bool) {
	kind, ok := s.kinds[path]
	return kind, ok
}

// Len returns the number of discovered entries.
func (s *EntrySet) Len() int {
	return len(s.kinds)
}

// Paths returns all discovered paths sorted bytewise, for deterministic iteration.
func (s *EntrySet) Paths() []string {
	paths := make([]string, 0, len(s.kinds))
	for p := range s.kinds {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns all discovered entries in Paths() order.
func (s *EntrySet) Entries() []models.Entry {
	paths := s.Paths()
	entries := make([]models.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, models.Entry{Path: p, Kind: s.kinds[p]})
	}
	return entries
}

// Discover recursively adds every non-ignored entry under dir to result.
// dir must be absolute. An ignored child is skipped entirely: it is neither
// added nor descended into. Listing errors propagate to the caller.
func Discover(fs billy.Dir, dir string, matcher Matcher, result *EntrySet) error {
	children, err := fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	for _, child := range children {
		childPath := filepath.Join(dir, child.Name())
		isDir := child.IsDir()

		if matcher != nil && matcher.Match(childPath, isDir) {
			continue
		}

		if isDir {
			result.Add(childPath, models.KindDirectory)
			if err := Discover(fs, childPath, matcher, result); err != nil {
				return err
			}
			continue
		}

		result.Add(childPath, models.KindFile)
	}

	return nil
}

// ListChildren returns the non-ignored direct children of dir as absolute
// paths, sorted bytewise.
func ListChildren(fs billy.Dir, dir string, matcher Matcher) ([]models.Entry, error) {
	children, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	entries := make([]models.Entry, 0, len(children))
	for _, child := range children {
		childPath := filepath.Join(dir, child.Name())
		if matcher != nil && matcher.Match(childPath, child.IsDir()) {
			continue
		}
		kind := models.KindFile
		if child.IsDir() {
			kind = models.KindDirectory
		}
		entries = append(entries, models.Entry{Path: childPath, Kind: kind})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
