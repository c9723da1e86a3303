package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xmhha/file-sorter/pkg/logger"
)

func openTestJournal(t *testing.T) (Journal, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := Open(Config{DBPath: dbPath}, logger.Noop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if closeErr := j.Close(); closeErr != nil {
			t.Logf("Close() error = %v", closeErr)
		}
	})
	return j, dbPath
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dbPath := openTestJournal(t)

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Database file not created: %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(Config{}, logger.Noop()); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Open() error = %v, want ErrEmptyPath", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	journals := map[string]Journal{
		"memory": NewMemory(),
	}
	j, _ := openTestJournal(t)
	journals["bolt"] = j

	for name, j := range journals {
		t.Run(name, func(t *testing.T) {
			for i := 1; i <= 5; i++ {
				err := j.Record(Entry{
					Time:        time.Now(),
					Task:        "zips",
					Source:      fmt.Sprintf("/w/%d.zip", i),
					Destination: fmt.Sprintf("/w/zips/%d.zip", i),
					Status:      StatusMoved,
				})
				if err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			entries, err := j.Recent(3)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("Recent(3) returned %d entries, want 3", len(entries))
			}

			// Newest first.
			if entries[0].Source != "/w/5.zip" || entries[2].Source != "/w/3.zip" {
				t.Errorf("Recent() order = %s..%s, want /w/5.zip../w/3.zip",
					entries[0].Source, entries[2].Source)
			}
			if entries[0].Seq != 5 {
				t.Errorf("Seq = %d, want 5", entries[0].Seq)
			}

			all, err := j.Recent(100)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(all) != 5 {
				t.Errorf("Recent(100) returned %d entries, want 5", len(all))
			}
		})
	}
}

func TestRecentZero(t *testing.T) {
	j, _ := openTestJournal(t)

	entries, err := j.Recent(0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent(0) returned %d entries, want 0", len(entries))
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(Config{DBPath: dbPath}, logger.Noop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := j.Record(Entry{Source: "/w/a.zip", Status: StatusFailed, Error: "permission denied"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(Config{DBPath: dbPath}, logger.Noop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reopened.Close() // nolint:errcheck

	entries, err := reopened.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Error != "permission denied" {
		t.Errorf("Recent() = %+v, want the failed entry", entries)
	}
}

func TestClosedJournal(t *testing.T) {
	for name, j := range map[string]Journal{"memory": NewMemory()} {
		t.Run(name, func(t *testing.T) {
			if err := j.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if err := j.Record(Entry{}); !errors.Is(err, ErrJournalClosed) {
				t.Errorf("Record() error = %v, want ErrJournalClosed", err)
			}
			if _, err := j.Recent(1); !errors.Is(err, ErrJournalClosed) {
				t.Errorf("Recent() error = %v, want ErrJournalClosed", err)
			}
		})
	}

	dbPath := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(Config{DBPath: dbPath}, logger.Noop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := j.Record(Entry{}); !errors.Is(err, ErrJournalClosed) {
		t.Errorf("Record() error = %v, want ErrJournalClosed", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandHome("~/x/journal.db"); got != filepath.Join(home, "x", "journal.db") {
		t.Errorf("expandHome() = %s", got)
	}
	if got := expandHome("~"); got != home {
		t.Errorf("expandHome(~) = %s, want %s", got, home)
	}

	for _, path := range []string{"/abs/journal.db", "~journal.db", "~user/journal.db", "rel/~/journal.db"} {
		if got := expandHome(path); got != path {
			t.Errorf("expandHome(%q) = %s, want unchanged", path, got)
		}
	}
}
