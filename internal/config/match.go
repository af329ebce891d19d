package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher selects files by include/exclude globs. Patterns use '/' as the
// separator and are matched against paths relative to the matcher root.
type Matcher struct {
	root    string
	include []glob.Glob
	exclude []glob.Glob
}

// Matcher compiles the [files] globs relative to the configuration root
// (the current directory when defaults are in use).
func (c *Config) Matcher() (*Matcher, error) {
	include, err := compile(c.Files.Include)
	if err != nil {
		return nil, fmt.Errorf("%w: [files].include: %w", ErrInvalidOption, err)
	}
	exclude, err := compile(c.Files.Exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: [files].exclude: %w", ErrInvalidOption, err)
	}
	return &Matcher{root: c.Root, include: include, exclude: exclude}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether the file at path is selected.
func (m *Matcher) Match(path string) bool {
	rel := m.rel(path)
	if anyMatch(m.exclude, rel) {
		return false
	}
	return anyMatch(m.include, rel)
}

// SkipDir reports whether a directory is excluded as a whole.
func (m *Matcher) SkipDir(path string) bool {
	rel := m.rel(path)
	if rel == "." || rel == "" {
		return false
	}
	return anyMatch(m.exclude, rel+"/")
}

func (m *Matcher) rel(path string) string {
	root := m.root
	if root == "" {
		root = "."
	}
	absRoot, errRoot := filepath.Abs(root)
	absPath, errPath := filepath.Abs(path)
	if errRoot == nil && errPath == nil {
		if rel, err := filepath.Rel(absRoot, absPath); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

// anyMatch also tries the path with a leading slash so that patterns starting
// with "**/" select files at the root.
func anyMatch(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match("/"+rel) {
			return true
		}
	}
	return false
}
