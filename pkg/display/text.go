package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/0xmhha/file-sorter/pkg/dispatch"
	"github.com/0xmhha/file-sorter/pkg/journal"
)

const timeLayout = "2006-01-02 15:04:05"

// textFormatter formats output as colored text lines.
type textFormatter struct {
	config Config
	styles palette
}

// FormatOutcome implements Formatter.FormatOutcome.
func (f *textFormatter) FormatOutcome(w io.Writer, o dispatch.Outcome) error {
	st := f.styles

	var style lipgloss.Style
	var icon, msg string
	switch o.Level {
	case dispatch.LevelPath:
		style, icon, msg = st.path, iconPath, st.highlightPath(o.Path)
	case dispatch.LevelInfo:
		style, icon, msg = st.info, iconInfo, o.Message
		switch {
		case o.Path == "":
		case msg == "":
			msg = st.highlightPath(o.Path)
		default:
			msg = st.highlightPath(o.Path) + "  " + msg
		}
	case dispatch.LevelSuccess:
		style, icon = st.success, iconSuccess
		msg = st.highlightPath(o.Path)
		if o.Message != "" {
			msg = o.Message
		}
		if o.Collision != dispatch.CollisionNone {
			msg += " " + st.dimLabel.Render("("+string(o.Collision)+")")
		}
	case dispatch.LevelWarning:
		style, icon = st.warning, iconWarning
		msg = st.highlightPath(o.Path) + "  " + st.warning.Render(o.Message)
	default:
		return nil
	}

	_, err := fmt.Fprintf(w, " %s [%s] %s\n", style.Render(icon), o.Event, msg)
	return err
}

// FormatNotice implements Formatter.FormatNotice.
func (f *textFormatter) FormatNotice(w io.Writer, notice string) error {
	_, err := fmt.Fprintf(w, "%s\n", f.styles.notice.Render("# "+notice))
	return err
}

// FormatEntries implements Formatter.FormatEntries.
func (f *textFormatter) FormatEntries(w io.Writer, entries []journal.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No moves recorded.")
		return err
	}

	for _, e := range entries {
		var line string
		if e.Status == journal.StatusMoved {
			line = fmt.Sprintf("%s %s %s -> %s",
				e.Time.Format(timeLayout),
				f.styles.success.Render(e.Status),
				e.Source,
				e.Destination)
			if e.Collision != "" {
				line += " (" + e.Collision + ")"
			}
		} else {
			line = fmt.Sprintf("%s %s %s: %s",
				e.Time.Format(timeLayout),
				f.styles.warning.Render(e.Status),
				e.Source,
				e.Error)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
