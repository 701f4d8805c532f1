// Package ignore turns a root's .gitignore into a single compiled glob matcher.
//
// Every non-comment line is wrapped as **/<line>** regardless of its own
// anchoring, negation or directory-only syntax. This is a deliberate
// simplification of ignore-file semantics and matches the long standing
// behaviour users rely on.
package ignore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/gobwas/glob"
)

const (
	// FileName is the exclusion file read from each root
	FileName = ".gitignore"

	// DefaultEntry is always appended to the exclusion file's lines
	DefaultEntry = ".git/"

	// DefaultPattern is used when the exclusion file cannot be read
	DefaultPattern = "**/.git/**"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Matcher reports whether an absolute path is excluded from discovery.
type Matcher struct {
	pattern string
	globs   []glob.Glob
}

// LoadPattern reads <root>/.gitignore and builds the brace-alternation glob.
// Any read failure (missing file, permission error, ...) yields DefaultPattern.
func LoadPattern(fs billy.Basic, rootPath string) string {
	data, err := util.ReadFile(fs, filepath.Join(rootPath, FileName))
	if err != nil {
		return DefaultPattern
	}
	return BuildPattern(string(data))
}

// BuildPattern converts exclusion file content into a single glob group.
func BuildPattern(content string) string {
	lines := lineBreak.Split(content, -1)
	lines = append(lines, DefaultEntry)

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, strings.TrimSpace("**/"+line+"**"))
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// Compile compiles a glob pattern with '/' as the path separator,
// so '*' stays within one path segment and '**' spans segments.
// A top-level brace group is compiled one alternative at a time: gobwas
// mis-matches alternatives such as **/*.log** inside a single group.
func Compile(pattern string) (*Matcher, error) {
	alts := splitAlternatives(pattern)
	globs := make([]glob.Glob, 0, len(alts))
	for _, alt := range alts {
		g, err := glob.Compile(alt, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return &Matcher{pattern: pattern, globs: globs}, nil
}

// splitAlternatives returns the alternatives of a pattern that is one
// top-level {a,b,...} group, or the pattern itself otherwise. Commas nested
// in inner braces or character classes, and escaped characters, do not split.
func splitAlternatives(pattern string) []string {
	if len(pattern) < 2 || pattern[0] != '{' || pattern[len(pattern)-1] != '}' {
		return []string{pattern}
	}

	var alts []string
	depth, inClass, start := 0, false, 1
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 && i != len(pattern)-1 {
				// The first group closes early: not a single top-level group.
				return []string{pattern}
			}
		case c == ',' && depth == 1:
			alts = append(alts, pattern[start:i])
			start = i + 1
		}
	}
	if depth != 0 || inClass {
		return []string{pattern}
	}
	return append(alts, pattern[start:len(pattern)-1])
}

// Load reads the root's exclusion file and compiles it. When the file's
// content does not compile, the default pattern is used instead and the
// compile error is returned alongside the usable matcher.
func Load(fs billy.Basic, rootPath string) (*Matcher, error) {
	pattern := LoadPattern(fs, rootPath)

	m, err := Compile(pattern)
	if err == nil {
		return m, nil
	}

	fallback, fallbackErr := Compile(DefaultPattern)
	if fallbackErr != nil {
		return nil, fallbackErr
	}
	return fallback, err
}

// Pattern returns the source glob.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether path is excluded. Directories are also tested with a
// trailing slash so that a "build/" line excludes the build directory itself.
func (m *Matcher) Match(path string, isDir bool) bool {
	p := filepath.ToSlash(path)
	dir := strings.TrimSuffix(p, "/") + "/"
	for _, g := range m.globs {
		if g.Match(p) || isDir && g.Match(dir) {
			return true
		}
	}
	return false
}
