package display

import (
	"encoding/json"
	"io"

	"github.com/0xmhha/file-sorter/pkg/dispatch"
	"github.com/0xmhha/file-sorter/pkg/journal"
)

// jsonFormatter formats output as JSON lines.
type jsonFormatter struct {
	config Config
}

type outcomeRecord struct {
	Level     string `json:"level"`
	Event     string `json:"event"`
	Task      string `json:"task,omitempty"`
	Root      string `json:"root,omitempty"`
	Path      string `json:"path,omitempty"`
	Source    string `json:"source,omitempty"`
	Message   string `json:"message,omitempty"`
	Collision string `json:"collision,omitempty"`
}

type noticeRecord struct {
	Notice string `json:"notice"`
}

// FormatOutcome implements Formatter.FormatOutcome.
func (f *jsonFormatter) FormatOutcome(w io.Writer, o dispatch.Outcome) error {
	if o.Level == dispatch.LevelNone {
		return nil
	}

	return json.NewEncoder(w).Encode(outcomeRecord{
		Level:     o.Level.String(),
		Event:     o.Event.String(),
		Task:      o.Task,
		Root:      o.Root,
		Path:      o.Path,
		Source:    o.Src,
		Message:   o.Message,
		Collision: string(o.Collision),
	})
}

// FormatNotice implements Formatter.FormatNotice.
func (f *jsonFormatter) FormatNotice(w io.Writer, notice string) error {
	return json.NewEncoder(w).Encode(noticeRecord{Notice: notice})
}

// FormatEntries implements Formatter.FormatEntries.
func (f *jsonFormatter) FormatEntries(w io.Writer, entries []journal.Entry) error {
	encoder := json.NewEncoder(w)
	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
