// Package resolver merges discovered entries with a root's order file into
// the final order that timestamps are assigned in.
//
// The final order is built oldest-first:
//
//	Others        = alphabetic(entries \ plain), with (regex) matches moved last
//	FinalOrder    = Others ++ reverse(plain)
//
// Timestamps increase along FinalOrder, so in a newest-first listing the first
// plain entry shows first, the remaining plain entries follow in declared
// order, then regex matches, then everything else alphabetically from Z to A.
package resolver

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/harrison/ordertouch/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Resolver computes final orders. It is not safe for concurrent use because
// the collator keeps internal buffers; create one per goroutine.
type Resolver struct {
	collator *collate.Collator
	warnings []string
}

// New creates a Resolver comparing paths with the root (language-neutral) collation.
func New() *Resolver {
	return NewWithLocale(language.Und)
}

// NewWithLocale creates a Resolver that sorts using the collation rules of tag.
func NewWithLocale(tag language.Tag) *Resolver {
	return &Resolver{collator: collate.New(tag)}
}

// Warnings returns the problems found by the last Resolve call, such as regex
// lines that do not compile.
func (r *Resolver) Warnings() []string {
	return r.warnings
}

// Resolve returns the final order for one root.
//
// entries are the discovered absolute paths, plain the resolved plain order
// entries in declared order, and regexLines the order file's regex lines
// (marker included) in declared order.
func (r *Resolver) Resolve(entries []string, plain []string, regexLines []string) models.FinalOrder {
	r.warnings = nil

	planned := make(map[string]bool, len(plain))
	for _, p := range plain {
		planned[p] = true
	}

	nonOrdered := make([]string, 0, len(entries))
	for _, e := range entries {
		if !planned[e] {
			nonOrdered = append(nonOrdered, e)
		}
	}

	r.SortAlphabetic(nonOrdered)
	others := MoveMatchesToTail(nonOrdered, r.compilePatterns(regexLines))

	final := make(models.FinalOrder, 0, len(others)+len(plain))
	final = append(final, others...)
	for i := len(plain) - 1; i >= 0; i-- {
		final = append(final, plain[i])
	}
	return final
}

// SortAlphabetic sorts paths in place with locale-aware comparison. Paths the
// collator considers equal are ordered bytewise so the result is identical
// from run to run.
func (r *Resolver) SortAlphabetic(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		if c := r.collator.CompareString(paths[i], paths[j]); c != 0 {
			return c < 0
		}
		return paths[i] < paths[j]
	})
}

// Pattern is one compiled deferred-placement rule.
type Pattern struct {
	Source string
	glob   glob.Glob
}

// Match reports whether path's base name or full path matches the rule.
func (p Pattern) Match(path string) bool {
	slashed := filepath.ToSlash(path)
	return p.glob.Match(filepath.Base(path)) || p.glob.Match(slashed)
}

// CompilePattern compiles one regex line (with or without the marker).
func CompilePattern(line string) (Pattern, error) {
	source := strings.TrimPrefix(line, models.RegexMarker)
	g, err := glob.Compile(source, '/')
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", source, err)
	}
	return Pattern{Source: source, glob: g}, nil
}

func (r *Resolver) compilePatterns(lines []string) []Pattern {
	patterns := make([]Pattern, 0, len(lines))
	for _, line := range lines {
		p, err := CompilePattern(line)
		if err != nil {
			r.warnings = append(r.warnings, err.Error())
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// MoveMatchesToTail partitions paths into those matching no pattern followed
// by those matching any pattern, keeping relative order within each group.
func MoveMatchesToTail(paths []string, patterns []Pattern) []string {
	unmatched := make([]string, 0, len(paths))
	matched := make([]string, 0)

	for _, path := range paths {
		if matchesAny(path, patterns) {
			matched = append(matched, path)
		} else {
			unmatched = append(unmatched, path)
		}
	}

	return append(unmatched, matched...)
}

func matchesAny(path string, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// Resolve is a convenience wrapper around New().Resolve.
func Resolve(entries []string, plain []string, regexLines []string) models.FinalOrder {
	return New().Resolve(entries, plain, regexLines)
}
