// Package resolvers provides ready-made rules.Resolver implementations that
// can be bound to tasks by name from configuration.
package resolvers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/0xmhha/file-sorter/pkg/rules"
)

// ErrUnknownResolver is returned by Lookup for unregistered names.
var ErrUnknownResolver = errors.New("unknown resolver")

const (
	// DefaultArchiveSubfolder is the subfolder Archive moves files into.
	DefaultArchiveSubfolder = "rar-0001"

	// DefaultArchivePassThrough marks names Archive leaves at the task destination.
	DefaultArchivePassThrough = "rar"

	monthLayout = "2006-01"
)

// Archive moves matched files into a subfolder of the task destination,
// except files whose name contains PassThrough.
type Archive struct {
	Subfolder   string
	PassThrough string
}

// NewArchive creates an Archive with the default subfolder and marker.
func NewArchive() *Archive {
	return &Archive{
		Subfolder:   DefaultArchiveSubfolder,
		PassThrough: DefaultArchivePassThrough,
	}
}

// Resolve implements rules.Resolver.
func (a *Archive) Resolve(src, dest string) rules.Verdict {
	name := filepath.Base(src)
	if a.PassThrough != "" && strings.Contains(name, a.PassThrough) {
		return rules.Continue()
	}
	return rules.Move(filepath.Join(filepath.Dir(dest), a.Subfolder, name))
}

// ByMonth moves files into a YYYY-MM folder of the task destination, taken
// from the file's modification time.
type ByMonth struct{}

// Resolve implements rules.Resolver.
func (ByMonth) Resolve(src, dest string) rules.Verdict {
	info, err := os.Stat(src)
	if err != nil {
		return rules.Err(fmt.Sprintf("cannot read modification time: %v", err))
	}
	month := info.ModTime().Format(monthLayout)
	return rules.Move(filepath.Join(filepath.Dir(dest), month, filepath.Base(src)))
}

// DryRun reports the destination instead of moving.
type DryRun struct{}

// Resolve implements rules.Resolver.
func (DryRun) Resolve(_, dest string) rules.Verdict {
	return rules.Path(dest)
}

// SkipHidden ignores dot-files.
type SkipHidden struct{}

// Resolve implements rules.Resolver.
func (SkipHidden) Resolve(src, _ string) rules.Verdict {
	if strings.HasPrefix(filepath.Base(src), ".") {
		return rules.None()
	}
	return rules.Continue()
}

type chain []rules.Resolver

// Chain evaluates resolvers in order. A Move verdict rewrites the
// destination seen by the following resolvers; the first verdict that is
// neither Continue nor Move is returned as is.
func Chain(rs ...rules.Resolver) rules.Resolver {
	var c chain
	for _, r := range rs {
		if r != nil {
			c = append(c, r)
		}
	}
	return c
}

// Resolve implements rules.Resolver.
func (c chain) Resolve(src, dest string) rules.Verdict {
	moved := false
	for _, r := range c {
		v := r.Resolve(src, dest)
		switch v.Kind {
		case rules.VerdictContinue:
		case rules.VerdictMove:
			dest = v.Path
			moved = true
		default:
			return v
		}
	}
	if moved {
		return rules.Move(dest)
	}
	return rules.Continue()
}

var registry = map[string]func() rules.Resolver{
	"archive":     func() rules.Resolver { return NewArchive() },
	"by-month":    func() rules.Resolver { return ByMonth{} },
	"dry-run":     func() rules.Resolver { return DryRun{} },
	"skip-hidden": func() rules.Resolver { return SkipHidden{} },
}

// Lookup returns a fresh resolver registered under name.
func Lookup(name string) (rules.Resolver, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResolver, name)
	}
	return factory(), nil
}

// Names returns the registered resolver names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
