package display

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Terminal colors, as ANSI palette indexes.
const (
	colorPath     = lipgloss.Color("3")
	colorInfo     = lipgloss.Color("7")
	colorSuccess  = lipgloss.Color("2")
	colorWarning  = lipgloss.Color("1")
	colorParent   = lipgloss.Color("6")
	colorDir      = lipgloss.Color("7")
	colorSep      = lipgloss.Color("238")
	colorNotice   = lipgloss.Color("7")
	colorDimLabel = lipgloss.Color("8")
)

// palette holds the styles of one text formatter. Without color every
// style renders through the Ascii profile and emits the text unchanged.
type palette struct {
	path     lipgloss.Style
	info     lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	parent   lipgloss.Style
	dir      lipgloss.Style
	sep      lipgloss.Style
	notice   lipgloss.Style
	dimLabel lipgloss.Style
}

// newPalette builds the styles on a private renderer so the color decision
// made by ResolveColor is the only input.
func newPalette(color bool) palette {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c)
	}

	return palette{
		path:     fg(colorPath),
		info:     fg(colorInfo),
		success:  fg(colorSuccess),
		warning:  fg(colorWarning),
		parent:   fg(colorParent),
		dir:      fg(colorDir),
		sep:      fg(colorSep),
		notice:   fg(colorNotice),
		dimLabel: fg(colorDimLabel),
	}
}

// highlightPath dims separators, shows the parent directory in cyan and
// the other directories in white, leaving the file name plain.
func (p palette) highlightPath(path string) string {
	sep := string(filepath.Separator)
	parts := strings.Split(path, sep)
	for i, part := range parts {
		switch {
		case part == "", i == len(parts)-1:
		case i == len(parts)-2:
			parts[i] = p.parent.Render(part)
		default:
			parts[i] = p.dir.Render(part)
		}
	}
	return strings.Join(parts, p.sep.Render(sep))
}
