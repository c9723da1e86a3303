package rules

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// DefaultIgnorePatterns suppress in-progress downloads and editor temp files.
var DefaultIgnorePatterns = []string{
	"*.tmp",
	"*.part",
	"*.partial",
	"*.download",
	"*.crdownload",
	".~*",
}

// IgnoreList matches file names that must never be dispatched.
type IgnoreList struct {
	patterns []string
	globs    []glob.Glob
}

// NewIgnoreList compiles the given glob patterns. Patterns are matched
// against the base name of a path.
func NewIgnoreList(patterns []string) (*IgnoreList, error) {
	list := &IgnoreList{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, p, err)
		}
		list.patterns = append(list.patterns, p)
		list.globs = append(list.globs, g)
	}
	return list, nil
}

// Match reports whether path's base name matches any pattern. A nil list
// matches nothing.
func (l *IgnoreList) Match(path string) bool {
	if l == nil {
		return false
	}
	name := filepath.Base(path)
	for _, g := range l.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns.
func (l *IgnoreList) Patterns() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.patterns))
	copy(out, l.patterns)
	return out
}
