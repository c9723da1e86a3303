package rules

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/0xmhha/file-sorter/pkg/watcher"
)

const noDescription = "no description"

// TaskBuilder accumulates the settings of one task. A builder can be added
// to several rulesets; tasks sealed from the same builder share one
// resolver lock.
type TaskBuilder struct {
	label       string
	description string
	pattern     string
	destination string
	entity      EntityKind
	predicate   Predicate
	resolver    *guardedResolver
}

// NewTask starts a task with the given label.
func NewTask(label string) *TaskBuilder {
	return &TaskBuilder{label: label}
}

// Label sets the task label.
func (b *TaskBuilder) Label(label string) *TaskBuilder {
	b.label = label
	return b
}

// Describe sets a free-form description.
func (b *TaskBuilder) Describe(description string) *TaskBuilder {
	b.description = description
	return b
}

// MatchPattern restricts the task to paths matching a regular expression.
func (b *TaskBuilder) MatchPattern(pattern string) *TaskBuilder {
	b.pattern = pattern
	return b
}

// Destination sets the destination directory. Relative destinations are
// resolved against the root when the task is added to a ruleset.
func (b *TaskBuilder) Destination(dir string) *TaskBuilder {
	b.destination = dir
	return b
}

// FilesOnly restricts the task to regular files.
func (b *TaskBuilder) FilesOnly() *TaskBuilder {
	b.entity = FilesOnly
	return b
}

// DirsOnly restricts the task to directories.
func (b *TaskBuilder) DirsOnly() *TaskBuilder {
	b.entity = DirsOnly
	return b
}

// AnyKind lets the task match files and directories.
func (b *TaskBuilder) AnyKind() *TaskBuilder {
	b.entity = AnyEntity
	return b
}

// Entity sets the entity filter.
func (b *TaskBuilder) Entity(kind EntityKind) *TaskBuilder {
	b.entity = kind
	return b
}

// On sets the event predicate.
func (b *TaskBuilder) On(p Predicate) *TaskBuilder {
	b.predicate = p
	return b
}

// OnKinds matches any of the given event kinds.
func (b *TaskBuilder) OnKinds(kinds ...watcher.Op) *TaskBuilder {
	var mask watcher.Op
	for _, k := range kinds {
		mask |= k
	}
	return b.On(PredicateFunc(func(kind, _ watcher.Op) bool {
		return kind != watcher.OpNone && kind&mask == kind
	}))
}

// OnCreate matches create events.
func (b *TaskBuilder) OnCreate() *TaskBuilder { return b.OnKinds(watcher.OpCreate) }

// OnModify matches modify events.
func (b *TaskBuilder) OnModify() *TaskBuilder { return b.OnKinds(watcher.OpModify) }

// OnRemove matches remove events.
func (b *TaskBuilder) OnRemove() *TaskBuilder { return b.OnKinds(watcher.OpRemove) }

// OnRename matches rename events.
func (b *TaskBuilder) OnRename() *TaskBuilder { return b.OnKinds(watcher.OpRename) }

// After matches kind only when the previous event for the same stem was prev.
func (b *TaskBuilder) After(prev, kind watcher.Op) *TaskBuilder {
	return b.On(PredicateFunc(func(k, p watcher.Op) bool {
		return k == kind && p == prev
	}))
}

// Resolve binds a resolver to the task.
func (b *TaskBuilder) Resolve(r Resolver) *TaskBuilder {
	if r == nil {
		b.resolver = nil
		return b
	}
	b.resolver = &guardedResolver{resolver: r}
	return b
}

// build seals the builder into a task for root.
func (b *TaskBuilder) build(root string) (*Task, error) {
	if b.predicate == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPredicate, b.name())
	}

	var re *regexp.Regexp
	if b.pattern != "" {
		var err error
		re, err = regexp.Compile(b.pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: task %s: %v", ErrInvalidPattern, b.name(), err)
		}
	}

	dest := root
	if b.destination != "" {
		dest = ResolveRelative(root, b.destination)
	}

	return &Task{
		label:       b.label,
		description: b.description,
		pattern:     re,
		destination: dest,
		entity:      b.entity,
		predicate:   b.predicate,
		resolver:    b.resolver,
	}, nil
}

func (b *TaskBuilder) name() string {
	if b.label == "" {
		return "(unlabeled)"
	}
	return b.label
}

// Task is a sealed, read-only rule bound to a root.
type Task struct {
	label       string
	description string
	pattern     *regexp.Regexp
	destination string
	entity      EntityKind
	predicate   Predicate
	resolver    *guardedResolver
}

// Label returns the task label.
func (t *Task) Label() string { return t.label }

// Description returns the task description.
func (t *Task) Description() string { return t.description }

// Short returns the first ten characters of the description.
func (t *Task) Short() string {
	if t.description == "" {
		return noDescription
	}
	runes := []rune(t.description)
	if len(runes) > 10 {
		runes = runes[:10]
	}
	return string(runes)
}

// Destination returns the resolved destination directory.
func (t *Task) Destination() string { return t.destination }

// Entity returns the entity filter.
func (t *Task) Entity() EntityKind { return t.entity }

// Pattern returns the match pattern source, or "".
func (t *Task) Pattern() string {
	if t.pattern == nil {
		return ""
	}
	return t.pattern.String()
}

// HasResolver reports whether a resolver is bound.
func (t *Task) HasResolver() bool { return t.resolver != nil }

func (t *Task) resolve(src, dest string) Verdict {
	if t.resolver == nil {
		return Continue()
	}
	return t.resolver.resolve(src, dest)
}

// guardedResolver serializes evaluations of one resolver.
type guardedResolver struct {
	mu       sync.Mutex
	resolver Resolver
}

func (g *guardedResolver) resolve(src, dest string) Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolver.Resolve(src, dest)
}
