// Package display renders dispatch outcomes and journal history for the
// terminal or for machine consumption.
//
// It supports a colored text format and a JSON-lines format.
package display

import (
	"io"

	"github.com/0xmhha/file-sorter/pkg/dispatch"
	"github.com/0xmhha/file-sorter/pkg/journal"
)

// Format represents an output format.
type Format string

const (
	// FormatText displays one colored line per outcome.
	FormatText Format = "text"

	// FormatJSON displays one JSON object per line.
	FormatJSON Format = "json"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	// ColorAuto enables color when the output is a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways forces color.
	ColorAlways ColorMode = "always"

	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// Formatter formats sorter output.
type Formatter interface {
	// FormatOutcome writes one dispatch outcome. Outcomes with
	// dispatch.LevelNone produce no output.
	FormatOutcome(w io.Writer, outcome dispatch.Outcome) error

	// FormatNotice writes a lifecycle notice such as a watched root.
	FormatNotice(w io.Writer, notice string) error

	// FormatEntries writes journal entries, newest first.
	FormatEntries(w io.Writer, entries []journal.Entry) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatText.
	Format Format

	// Color enables ANSI colors in the text format. Use ResolveColor to
	// derive it from a ColorMode.
	// Default: false.
	Color bool
}
