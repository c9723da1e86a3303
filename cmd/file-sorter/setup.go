package main

import (
	"fmt"

	"github.com/0xmhha/file-sorter/pkg/config"
	"github.com/0xmhha/file-sorter/pkg/resolvers"
	"github.com/0xmhha/file-sorter/pkg/rules"
	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// configureRoot returns the ruleset callback for one configured root.
func configureRoot(root config.RootConfig, dryRun bool) func(*rules.Ruleset) error {
	return func(rs *rules.Ruleset) error {
		if root.Recursive {
			rs.Apply(rules.Recursive())
		}
		if root.PollInterval > 0 {
			rs.Apply(rules.PollInterval(root.PollInterval))
		}

		for _, tc := range root.Tasks {
			b, err := taskBuilder(tc, dryRun)
			if err != nil {
				return err
			}
			if err := rs.Add(b); err != nil {
				return err
			}
		}
		return nil
	}
}

// taskBuilder translates a configured task into a builder.
func taskBuilder(tc config.TaskConfig, dryRun bool) (*rules.TaskBuilder, error) {
	b := rules.NewTask(tc.Label).
		Describe(tc.Description).
		MatchPattern(tc.Pattern).
		Destination(tc.Destination)

	switch tc.Kind {
	case "files":
		b.FilesOnly()
	case "dirs":
		b.DirsOnly()
	case "", "any":
		b.AnyKind()
	default:
		return nil, fmt.Errorf("task %s: %w: %q", tc.Label, config.ErrInvalidTaskKind, tc.Kind)
	}

	kinds, err := tc.EventKinds()
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", tc.Label, err)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("task %s: %w", tc.Label, rules.ErrMissingPredicate)
	}

	if prev := tc.AfterKind(); prev != watcher.OpNone {
		b.On(afterAny(prev, kinds))
	} else {
		b.OnKinds(kinds...)
	}

	var resolver rules.Resolver
	if tc.Resolver != "" {
		r, err := resolvers.Lookup(tc.Resolver)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", tc.Label, err)
		}
		resolver = r
	}
	if dryRun {
		resolver = resolvers.Chain(resolver, resolvers.DryRun{})
	}
	if resolver != nil {
		b.Resolve(resolver)
	}

	return b, nil
}

// afterAny matches any of kinds when the previous event was prev.
func afterAny(prev watcher.Op, kinds []watcher.Op) rules.Predicate {
	return rules.PredicateFunc(func(kind, last watcher.Op) bool {
		if last != prev {
			return false
		}
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	})
}
