package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/0xmhha/file-sorter/pkg/config"
	"github.com/0xmhha/file-sorter/pkg/display"
	"github.com/0xmhha/file-sorter/pkg/journal"
	"github.com/0xmhha/file-sorter/pkg/logger"
	"github.com/0xmhha/file-sorter/pkg/rules"
	"github.com/0xmhha/file-sorter/pkg/sorter"
)

// runCommand watches the configured roots.
type runCommand struct {
	filter     string
	dryRun     bool
	configPath string
}

// Execute runs the sorter until SIGINT or SIGTERM.
func (c *runCommand) Execute() error {
	cfg, err := config.NewLoader(c.configPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg)

	if len(cfg.Roots) == 0 {
		return fmt.Errorf("no roots configured; run 'file-sorter config init' to create a starter configuration")
	}

	var j journal.Journal
	if cfg.Journal.Enabled && !c.dryRun {
		j, err = journal.Open(journal.Config{DBPath: cfg.Journal.DBPath}, log)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() {
			if err := j.Close(); err != nil {
				log.Error("failed to close journal", "error", err)
			}
		}()
	}

	ignore, err := rules.NewIgnoreList(cfg.IgnorePatterns)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cfg, "", os.Stdout)
	if err != nil {
		return err
	}

	s, err := sorter.New(sorter.Config{
		DumpFolder:    cfg.DumpFolder,
		PollInterval:  cfg.PollInterval,
		TickRate:      cfg.TickRate,
		QueueCapacity: cfg.QueueCapacity,
		RootFilter:    c.filter,
	}, sorter.Deps{
		Journal:   j,
		Ignore:    ignore,
		Logger:    log,
		Output:    os.Stdout,
		Formatter: formatter,
	})
	if err != nil {
		return fmt.Errorf("failed to create sorter: %w", err)
	}

	for _, root := range cfg.Roots {
		if err := s.Watch(root.Path, configureRoot(root, c.dryRun)); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Start(ctx)
}

// historyCommand prints recent journal entries.
type historyCommand struct {
	limit      int
	format     string
	configPath string
}

// Execute prints the most recent moves, newest first.
func (c *historyCommand) Execute() error {
	cfg, err := config.NewLoader(c.configPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg)

	if _, err := os.Stat(cfg.Journal.DBPath); os.IsNotExist(err) {
		fmt.Println("No moves recorded.")
		return nil
	}

	j, err := journal.Open(journal.Config{DBPath: cfg.Journal.DBPath}, log)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err := j.Close(); err != nil {
			log.Error("failed to close journal", "error", err)
		}
	}()

	entries, err := j.Recent(c.limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	formatter, err := newFormatter(cfg, c.format, os.Stdout)
	if err != nil {
		return err
	}
	return formatter.FormatEntries(os.Stdout, entries)
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		Format: cfg.Logging.Format,
	})
}

// newFormatter builds the formatter for out. format overrides the
// configured display format when set.
func newFormatter(cfg *config.Config, format string, out *os.File) (display.Formatter, error) {
	if format == "" {
		format = cfg.Display.Format
	}

	f, err := display.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	mode, err := display.ParseColorMode(cfg.Display.Color)
	if err != nil {
		return nil, err
	}

	return display.New(display.Config{
		Format: f,
		Color:  f == display.FormatText && display.ResolveColor(mode, out),
	}), nil
}
