package sorter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/0xmhha/file-sorter/pkg/dispatch"
	"github.com/0xmhha/file-sorter/pkg/display"
	"github.com/0xmhha/file-sorter/pkg/logger"
	"github.com/0xmhha/file-sorter/pkg/rules"
	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// Sorter runs one watcher goroutine per root and a single move consumer.
type Sorter struct {
	config   Config
	deps     Deps
	logger   logger.Logger
	executor *dispatch.Executor
	matcher  *rules.Matcher

	mu       sync.Mutex
	started  bool
	rulesets []*rules.Ruleset

	outMu sync.Mutex
	ready chan struct{}
}

// New creates a sorter and creates the dump folder if it does not exist.
//
// Returns:
//   - Configured Sorter
//   - Error if the dump folder is missing or cannot be created
func New(cfg Config, deps Deps) (*Sorter, error) {
	if cfg.DumpFolder == "" {
		return nil, ErrNoDumpFolder
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.QueueCapacity < 0 {
		cfg.QueueCapacity = 0
	}

	dump, err := filepath.Abs(cfg.DumpFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dump folder: %w", err)
	}
	cfg.DumpFolder = dump

	if err := os.MkdirAll(dump, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dump folder: %w", err)
	}

	if deps.Logger == nil {
		deps.Logger = logger.Default()
	}
	if deps.Source == nil {
		deps.Source = watcher.NewSource(logger.Component(deps.Logger, logger.ComponentWatcher))
	}
	if deps.Ignore == nil {
		ignore, err := rules.NewIgnoreList(rules.DefaultIgnorePatterns)
		if err != nil {
			return nil, err
		}
		deps.Ignore = ignore
	}
	if deps.Output == nil {
		deps.Output = os.Stdout
	}
	if deps.Formatter == nil {
		deps.Formatter = display.New(display.Config{Format: display.FormatText})
	}

	executor, err := dispatch.NewExecutor(dispatch.Config{
		DumpFolder: dump,
		Journal:    deps.Journal,
		Now:        deps.Now,
	}, logger.Component(deps.Logger, logger.ComponentExecutor))
	if err != nil {
		return nil, err
	}

	s := &Sorter{
		config:   cfg,
		deps:     deps,
		logger:   logger.Component(deps.Logger, logger.ComponentSorter),
		executor: executor,
		matcher:  rules.NewMatcher(rules.NewHistory(), deps.Ignore, logger.Component(deps.Logger, logger.ComponentMatcher)),
		ready:    make(chan struct{}),
	}

	s.logger.Info("sorter created",
		"dump_folder", dump,
		"poll_interval", cfg.PollInterval,
		"queue_capacity", cfg.QueueCapacity)

	return s, nil
}

// Watch registers root and lets configure populate its ruleset. Roots that
// do not exist, or that the root filter excludes, are skipped with a
// warning and no error.
func (s *Sorter) Watch(root string, configure func(*rules.Ruleset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	rs, err := rules.NewRuleset(root)
	if err != nil {
		return err
	}

	if s.config.RootFilter != "" && !strings.Contains(rs.Root(), s.config.RootFilter) {
		s.logger.Debug("root filtered out", "root", rs.Root(), "filter", s.config.RootFilter)
		return nil
	}

	if _, err := os.Stat(rs.Root()); err != nil {
		s.logger.Warn("skipping root", "root", rs.Root(), "error", err)
		s.notice("skipping " + rs.Root())
		return nil
	}

	if configure != nil {
		if err := configure(rs); err != nil {
			return fmt.Errorf("failed to configure %s: %w", rs.Root(), err)
		}
	}

	s.rulesets = append(s.rulesets, rs)
	return nil
}

// Rulesets returns the registered rulesets.
func (s *Sorter) Rulesets() []*rules.Ruleset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*rules.Ruleset, len(s.rulesets))
	copy(out, s.rulesets)
	return out
}

// Ready is closed once every watcher goroutine has finished its setup,
// successfully or not.
func (s *Sorter) Ready() <-chan struct{} {
	return s.ready
}

// Start runs the pipeline until ctx is cancelled. It returns early, with
// the joined setup errors, when no root could be watched. Otherwise it
// returns the setup errors of the failed roots, or nil, after shutdown.
// Items already queued at shutdown are still executed.
func (s *Sorter) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	rulesets := append([]*rules.Ruleset(nil), s.rulesets...)
	s.mu.Unlock()

	if len(rulesets) == 0 {
		return ErrNoRulesets
	}

	queue := make(chan dispatch.Item, s.config.QueueCapacity)
	flags := make([]atomic.Bool, len(rulesets))
	setupErrs := make([]error, len(rulesets))

	var watchers errgroup.Group
	for i, rs := range rulesets {
		i, rs := i, rs
		watchers.Go(func() error {
			return s.runRoot(ctx, rs, queue, &flags[i], &setupErrs[i])
		})
	}

	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		s.consume(queue)
	}()

	s.waitReady(ctx, flags)
	close(s.ready)

	// A set flag publishes the root's setup error.
	watching := 0
	for i := range flags {
		if flags[i].Load() && setupErrs[i] == nil {
			watching++
		}
	}
	if watching > 0 {
		s.notice("--------")
		s.logger.Info("sorter started", "roots", watching)
	}

	err := watchers.Wait()
	close(queue)
	<-consumed

	s.logger.Info("sorter stopped")
	if err != nil {
		return errors.Join(setupErrs...)
	}
	return nil
}

// waitReady polls the ready flags until all are set or ctx is done.
func (s *Sorter) waitReady(ctx context.Context, flags []atomic.Bool) {
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		count := 0
		for i := range flags {
			if flags[i].Load() {
				count++
			}
		}
		if count == len(flags) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runRoot sets up the watch for one root and matches its batches until
// the stream ends. A setup failure is stored in setupErr before ready is
// set, and returned.
func (s *Sorter) runRoot(ctx context.Context, rs *rules.Ruleset, queue chan<- dispatch.Item, ready *atomic.Bool, setupErr *error) error {
	root := rs.Root()
	log := logger.ForRoot(s.logger, root)

	opts := watcher.Options{
		Recursive:    rs.IsRecursive(),
		PollInterval: s.config.PollInterval,
		TickRate:     s.config.TickRate,
	}
	if d := rs.Interval(); d > 0 {
		opts.PollInterval = d
	}

	batches, err := s.deps.Source.Watch(ctx, root, opts)
	if err != nil {
		if errors.Is(err, watcher.ErrPathNotFound) {
			err = fmt.Errorf("%w: %s", ErrRootNotFound, root)
		} else {
			err = fmt.Errorf("failed to watch %s: %w", root, err)
		}
		log.Error("watch setup failed", "error", err)
		*setupErr = err
		ready.Store(true)
		return err
	}

	mode := ""
	if opts.Recursive {
		mode = string(filepath.Separator) + "*"
	}
	s.notice("watching " + root + mode)
	ready.Store(true)

	for batch := range batches {
		if batch.Err != nil {
			log.Warn("watch error", "error", batch.Err)
			continue
		}

		for _, ev := range batch.Events {
			for _, item := range s.matcher.Match(rs, ev) {
				select {
				case queue <- item:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
	return nil
}

// consume executes queued items until the queue is closed.
func (s *Sorter) consume(queue <-chan dispatch.Item) {
	for item := range queue {
		s.report(s.executor.Execute(item))
	}
}

func (s *Sorter) report(outcome dispatch.Outcome) {
	s.outMu.Lock()
	err := s.deps.Formatter.FormatOutcome(s.deps.Output, outcome)
	s.outMu.Unlock()

	if err != nil {
		s.logger.Warn("failed to print outcome", "error", err)
	}

	if s.deps.Observer != nil {
		s.deps.Observer(outcome)
	}
}

func (s *Sorter) notice(text string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if err := s.deps.Formatter.FormatNotice(s.deps.Output, text); err != nil {
		s.logger.Warn("failed to print notice", "error", err)
	}
}
