package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/0xmhha/file-sorter/pkg/dispatch"
	"github.com/0xmhha/file-sorter/pkg/logger"
	"github.com/0xmhha/file-sorter/pkg/recent"
	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// History records the last event kind per file stem.
type History = recent.Buffer[string, watcher.Op]

// NewHistory creates a history with the default capacity.
func NewHistory() *History {
	return recent.New[string, watcher.Op](recent.DefaultCapacity)
}

// Matcher evaluates events against rulesets.
type Matcher struct {
	history *History
	ignore  *IgnoreList
	logger  logger.Logger
}

// NewMatcher creates a matcher. Any argument may be nil.
func NewMatcher(history *History, ignore *IgnoreList, log logger.Logger) *Matcher {
	if history == nil {
		history = NewHistory()
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Matcher{
		history: history,
		ignore:  ignore,
		logger:  log,
	}
}

// Match evaluates the current location of ev against the tasks of rs in
// declaration order and returns one item per matching task. Earlier entries
// of ev.Paths, such as the old name of a rename, are not evaluated.
func (m *Matcher) Match(rs *Ruleset, ev watcher.Event) []dispatch.Item {
	path := ev.Path()
	if path == "" {
		return nil
	}
	return m.matchPath(rs, path, ev.Kind)
}

func (m *Matcher) matchPath(rs *Ruleset, path string, kind watcher.Op) []dispatch.Item {
	stem := fileStem(path)
	prev, _ := m.history.Take(stem)

	info, statErr := os.Stat(path)
	present := statErr == nil

	var items []dispatch.Item
	for _, task := range rs.tasks {
		if !entityMatches(task.entity, info, present) {
			continue
		}
		if !task.predicate.Matches(kind, prev) {
			continue
		}
		if task.pattern != nil && !task.pattern.MatchString(path) {
			continue
		}
		if m.ignore.Match(path) || !present {
			continue
		}

		item := m.dispatchFor(rs, task, path)
		item.Event = kind
		item.Task = task.label
		item.Root = rs.root
		items = append(items, item)

		m.logger.Debug("task matched",
			"root", rs.root,
			"task", task.label,
			"path", path,
			"event", kind.String())
	}

	m.history.Push(stem, kind)
	return items
}

// dispatchFor computes the default destination, consults the resolver and
// converts its verdict into an item.
func (m *Matcher) dispatchFor(rs *Ruleset, task *Task, src string) dispatch.Item {
	dest := filepath.Join(task.destination, filepath.Base(src))

	verdict := task.resolve(src, dest)
	switch verdict.Kind {
	case VerdictMove:
		dest = verdict.Path
		if !filepath.IsAbs(dest) {
			dest = ResolveRelative(rs.root, dest)
		}
	case VerdictPath:
		return dispatch.Report(dispatch.LevelPath, verdict.Path, "")
	case VerdictInfo:
		return dispatch.Report(dispatch.LevelInfo, src, verdict.Message)
	case VerdictOk:
		return dispatch.Report(dispatch.LevelSuccess, src, verdict.Message)
	case VerdictErr:
		return dispatch.Report(dispatch.LevelWarning, src, verdict.Message)
	case VerdictNone:
		return dispatch.None()
	}

	if dispatch.SamePath(src, dest) {
		return dispatch.Report(dispatch.LevelInfo, src, "already in place")
	}
	return dispatch.Move(src, dest)
}

func entityMatches(kind EntityKind, info os.FileInfo, present bool) bool {
	switch kind {
	case FilesOnly:
		return present && !info.IsDir()
	case DirsOnly:
		return present && info.IsDir()
	default:
		return true
	}
}

// fileStem returns the base name without its final extension.
func fileStem(path string) string {
	name := filepath.Base(path)
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
