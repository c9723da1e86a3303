package rules

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Ruleset binds an ordered list of tasks to one watched root.
type Ruleset struct {
	root         string
	recursive    bool
	pollInterval time.Duration
	tasks        []*Task
}

// Option configures a Ruleset.
type Option func(*Ruleset)

// Recursive watches the root's subdirectories as well.
func Recursive() Option {
	return func(rs *Ruleset) {
		rs.recursive = true
	}
}

// PollInterval overrides the debounce window for this root.
func PollInterval(d time.Duration) Option {
	return func(rs *Ruleset) {
		rs.pollInterval = d
	}
}

// NewRuleset creates an empty ruleset for root. Relative roots are made
// absolute against the working directory.
func NewRuleset(root string, opts ...Option) (*Ruleset, error) {
	if strings.Contains(root, "*") {
		return nil, fmt.Errorf("%w: %s", ErrRootWildcard, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	rs := &Ruleset{root: abs}
	for _, opt := range opts {
		opt(rs)
	}
	return rs, nil
}

// Apply applies options after construction.
func (rs *Ruleset) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(rs)
	}
}

// Add seals the builder into a task for this root and appends it.
func (rs *Ruleset) Add(b *TaskBuilder) error {
	task, err := b.build(rs.root)
	if err != nil {
		return err
	}
	rs.tasks = append(rs.tasks, task)
	return nil
}

// Root returns the absolute root path.
func (rs *Ruleset) Root() string { return rs.root }

// IsRecursive reports whether subdirectories are watched.
func (rs *Ruleset) IsRecursive() bool { return rs.recursive }

// Interval returns the per-root poll interval override, or 0.
func (rs *Ruleset) Interval() time.Duration { return rs.pollInterval }

// Tasks returns the tasks in declaration order.
func (rs *Ruleset) Tasks() []*Task {
	out := make([]*Task, len(rs.tasks))
	copy(out, rs.tasks)
	return out
}

// ResolveRelative resolves dest against root. Absolute destinations are cleaned
// and returned as is. Each ".." pops one root component; popping past the
// filesystem root stays at the filesystem root.
//
//	ResolveRelative("/a/b/c/", "../../e/") == "/a/e"
//	ResolveRelative("/a/", "./b/")         == "/a/b"
//	ResolveRelative("/a/", "../../../")    == "/"
func ResolveRelative(root, dest string) string {
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}

	volume := filepath.VolumeName(root)
	stack := splitComponents(root[len(volume):])

	for _, part := range splitComponents(dest) {
		switch part {
		case ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}

	sep := string(filepath.Separator)
	return volume + sep + strings.Join(stack, sep)
}

// splitComponents splits p on separators, dropping empty components.
func splitComponents(p string) []string {
	return strings.FieldsFunc(filepath.ToSlash(p), func(r rune) bool {
		return r == '/'
	})
}
