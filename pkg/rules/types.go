// Package rules holds the declarative side of file sorting: tasks that
// describe which events move which files where, the rulesets that bind
// tasks to a watched root, and the matcher that turns events into dispatch
// items.
//
// Usage:
//
//	rs, err := rules.NewRuleset("/home/me/Downloads")
//	if err != nil {
//	    return err
//	}
//	err = rs.Add(rules.NewTask("zips").
//	    MatchPattern(`\.zip$`).
//	    Destination("./Zips/").
//	    FilesOnly().
//	    OnCreate())
package rules

import (
	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// EntityKind restricts a task to files, directories, or both.
type EntityKind int

const (
	AnyEntity EntityKind = iota
	FilesOnly
	DirsOnly
)

// String returns the configuration name of the entity kind.
func (k EntityKind) String() string {
	switch k {
	case FilesOnly:
		return "files"
	case DirsOnly:
		return "dirs"
	default:
		return "any"
	}
}

// Predicate decides whether an event kind triggers a task. prev is the
// previous event kind recorded for the same file stem, or watcher.OpNone.
type Predicate interface {
	Matches(kind, prev watcher.Op) bool
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(kind, prev watcher.Op) bool

// Matches implements Predicate.
func (f PredicateFunc) Matches(kind, prev watcher.Op) bool {
	return f(kind, prev)
}

// Resolver customizes or short-circuits the default move for a matched
// path. A Resolver is never evaluated concurrently for the same task.
type Resolver interface {
	Resolve(src, dest string) Verdict
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(src, dest string) Verdict

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(src, dest string) Verdict {
	return f(src, dest)
}

// VerdictKind identifies a resolver decision.
type VerdictKind int

const (
	VerdictContinue VerdictKind = iota
	VerdictMove
	VerdictPath
	VerdictInfo
	VerdictOk
	VerdictErr
	VerdictNone
)

// Verdict is a resolver decision.
type Verdict struct {
	Kind VerdictKind

	// Path is set for VerdictMove and VerdictPath.
	Path string

	// Message is set for VerdictInfo, VerdictOk and VerdictErr.
	Message string
}

// Move overrides the destination and proceeds with the default move.
func Move(dest string) Verdict { return Verdict{Kind: VerdictMove, Path: dest} }

// Path reports a path without moving anything.
func Path(p string) Verdict { return Verdict{Kind: VerdictPath, Path: p} }

// Info reports an informational message without moving anything.
func Info(msg string) Verdict { return Verdict{Kind: VerdictInfo, Message: msg} }

// Ok reports a success message without moving anything.
func Ok(msg string) Verdict { return Verdict{Kind: VerdictOk, Message: msg} }

// Err reports a failure message without moving anything.
func Err(msg string) Verdict { return Verdict{Kind: VerdictErr, Message: msg} }

// Continue accepts the computed destination.
func Continue() Verdict { return Verdict{Kind: VerdictContinue} }

// None takes no action.
func None() Verdict { return Verdict{Kind: VerdictNone} }
