package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/0xmhha/file-sorter/pkg/watcher"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvConfig, EnvDumpFolder, EnvLogLevel, EnvJournalDB} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.DumpFolder == "" {
		t.Error("DumpFolder not set")
	}

	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}

	if cfg.QueueCapacity != 1 {
		t.Errorf("QueueCapacity = %d, want 1", cfg.QueueCapacity)
	}

	if len(cfg.IgnorePatterns) == 0 {
		t.Error("IgnorePatterns is empty")
	}

	if !cfg.Journal.Enabled || cfg.Journal.DBPath == "" {
		t.Error("journal not enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() is invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid default config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid example config",
			mutate: func(c *Config) { c.Roots = Example().Roots },
		},
		{
			name:    "no dump folder",
			mutate:  func(c *Config) { c.DumpFolder = "" },
			wantErr: ErrNoDumpFolder,
		},
		{
			name:    "negative poll interval",
			mutate:  func(c *Config) { c.PollInterval = -time.Second },
			wantErr: ErrInvalidPollInterval,
		},
		{
			name:    "negative tick rate",
			mutate:  func(c *Config) { c.TickRate = -time.Second },
			wantErr: ErrInvalidTickRate,
		},
		{
			name:    "negative queue capacity",
			mutate:  func(c *Config) { c.QueueCapacity = -1 },
			wantErr: ErrInvalidQueueCapacity,
		},
		{
			name:   "zero queue capacity",
			mutate: func(c *Config) { c.QueueCapacity = 0 },
		},
		{
			name:    "journal without path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: ErrNoJournalPath,
		},
		{
			name: "disabled journal without path",
			mutate: func(c *Config) {
				c.Journal.Enabled = false
				c.Journal.DBPath = ""
			},
		},
		{
			name:    "invalid display format",
			mutate:  func(c *Config) { c.Display.Format = "table" },
			wantErr: ErrInvalidDisplayFormat,
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Display.Color = "sometimes" },
			wantErr: ErrInvalidColorMode,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "empty root path",
			mutate:  func(c *Config) { c.Roots = []RootConfig{{}} },
			wantErr: ErrEmptyRootPath,
		},
		{
			name:    "root wildcard",
			mutate:  func(c *Config) { c.Roots = []RootConfig{{Path: "/home/*/Downloads"}} },
			wantErr: ErrRootWildcard,
		},
		{
			name: "task without events",
			mutate: func(c *Config) {
				c.Roots = []RootConfig{{Path: "/w", Tasks: []TaskConfig{{Label: "x"}}}}
			},
			wantErr: ErrNoEvents,
		},
		{
			name: "task with unknown event",
			mutate: func(c *Config) {
				c.Roots = []RootConfig{{Path: "/w", Tasks: []TaskConfig{{Label: "x", Events: []string{"explode"}}}}}
			},
			wantErr: ErrInvalidEvent,
		},
		{
			name: "task with none event",
			mutate: func(c *Config) {
				c.Roots = []RootConfig{{Path: "/w", Tasks: []TaskConfig{{Label: "x", Events: []string{"none"}}}}}
			},
			wantErr: ErrInvalidEvent,
		},
		{
			name: "task with unknown after",
			mutate: func(c *Config) {
				c.Roots = []RootConfig{{Path: "/w", Tasks: []TaskConfig{{Label: "x", Events: []string{"modify"}, After: "later"}}}}
			},
			wantErr: ErrInvalidEvent,
		},
		{
			name: "task with unknown kind",
			mutate: func(c *Config) {
				c.Roots = []RootConfig{{Path: "/w", Tasks: []TaskConfig{{Label: "x", Kind: "links", Events: []string{"create"}}}}}
			},
			wantErr: ErrInvalidTaskKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskEventKinds(t *testing.T) {
	task := TaskConfig{Events: []string{"create", "Renamed"}, After: "create"}

	kinds, err := task.EventKinds()
	if err != nil {
		t.Fatalf("EventKinds() error = %v", err)
	}
	if len(kinds) != 2 || kinds[0] != watcher.OpCreate || kinds[1] != watcher.OpRename {
		t.Errorf("EventKinds() = %v", kinds)
	}
	if task.AfterKind() != watcher.OpCreate {
		t.Errorf("AfterKind() = %v, want CREATE", task.AfterKind())
	}
	if (TaskConfig{}).AfterKind() != watcher.OpNone {
		t.Error("empty After should be OpNone")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
dump_folder: /srv/dump
poll_interval: 500ms
queue_capacity: 0
journal:
  enabled: false
roots:
  - path: /w
    recursive: true
    poll_interval: 1s
    tasks:
      - label: zips
        kind: files
        events: [create]
        pattern: '\.zip$'
        destination: ./zips
        resolver: archive
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.DumpFolder != "/srv/dump" {
		t.Errorf("DumpFolder = %q", cfg.DumpFolder)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.QueueCapacity != 0 {
		t.Errorf("QueueCapacity = %d, want explicit 0", cfg.QueueCapacity)
	}
	if cfg.Journal.Enabled {
		t.Error("Journal.Enabled should be false")
	}
	if cfg.Journal.DBPath == "" {
		t.Error("Journal.DBPath should keep its default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}

	if len(cfg.Roots) != 1 {
		t.Fatalf("len(Roots) = %d, want 1", len(cfg.Roots))
	}
	root := cfg.Roots[0]
	if root.Path != "/w" || !root.Recursive || root.PollInterval != time.Second {
		t.Errorf("root = %+v", root)
	}
	if len(root.Tasks) != 1 || root.Tasks[0].Resolver != "archive" || root.Tasks[0].Pattern != `\.zip$` {
		t.Errorf("tasks = %+v", root.Tasks)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadFromFile(writeConfig(t, "roots: [unclosed"))
		if !errors.Is(err, ErrInvalidYAML) {
			t.Errorf("error = %v, want ErrInvalidYAML", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadFromFile(writeConfig(t, "dump_foldr: /x\n"))
		if !errors.Is(err, ErrInvalidYAML) {
			t.Errorf("error = %v, want ErrInvalidYAML", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadFromFile(writeConfig(t, "queue_capacity: -3\n"))
		if !errors.Is(err, ErrInvalidQueueCapacity) {
			t.Errorf("error = %v, want ErrInvalidQueueCapacity", err)
		}
	})

	t.Run("empty file uses defaults", func(t *testing.T) {
		cfg, err := LoadFromFile(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if cfg.PollInterval != 2*time.Second {
			t.Errorf("PollInterval = %v", cfg.PollInterval)
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "dump_folder: /from/file\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvDumpFolder, "/from/env")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvJournalDB, "/tmp/j.db")

	loader := NewLoader("")
	if loader.Path() != path {
		t.Errorf("Path() = %q, want %q", loader.Path(), path)
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DumpFolder != "/from/env" {
		t.Errorf("DumpFolder = %q", cfg.DumpFolder)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Journal.DBPath != "/tmp/j.db" {
		t.Errorf("Journal.DBPath = %q", cfg.Journal.DBPath)
	}
}

func TestHomeExpansion(t *testing.T) {
	clearEnv(t)

	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
dump_folder: ~/dump
journal:
  db_path: ~/j.db
roots:
  - path: ~/Downloads
    tasks:
      - label: all
        events: [create]
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.DumpFolder != filepath.Join(home, "dump") {
		t.Errorf("DumpFolder = %q", cfg.DumpFolder)
	}
	if cfg.Journal.DBPath != filepath.Join(home, "j.db") {
		t.Errorf("Journal.DBPath = %q", cfg.Journal.DBPath)
	}
	if cfg.Roots[0].Path != filepath.Join(home, "Downloads") {
		t.Errorf("Roots[0].Path = %q", cfg.Roots[0].Path)
	}

	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("ExpandHome(~user/x) = %q", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Example()
	cfg.DumpFolder = "/srv/dump"
	cfg.Roots[0].Path = "/w"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %o, want 600", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if !strings.Contains(string(data), "poll_interval: 2s") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.DumpFolder != "/srv/dump" || len(loaded.Roots) != 1 || loaded.Roots[0].Tasks[0].Label != "zips" {
		t.Errorf("reloaded config = %+v", loaded)
	}
}

func TestSaveInvalid(t *testing.T) {
	cfg := Default()
	cfg.DumpFolder = ""

	if err := Save(cfg, filepath.Join(t.TempDir(), "c.yaml")); !errors.Is(err, ErrNoDumpFolder) {
		t.Errorf("Save() error = %v, want ErrNoDumpFolder", err)
	}
}
