// Package watch re-runs the sync whenever the vault changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/vaultsync/internal/docs"
	"git.home.luguber.info/inful/vaultsync/internal/logfields"
)

// Trigger reasons passed to SyncFunc.
const (
	ReasonInitial  = "initial"
	ReasonChange   = "change"
	ReasonInterval = "interval"
)

// SyncFunc performs one sync run. Errors are logged and do not stop the watcher.
type SyncFunc func(ctx context.Context, reason string) error

// Watcher runs SyncFunc once at start, again after every burst of vault
// changes, and optionally on a fixed interval. Runs never overlap; triggers
// arriving during a run collapse into a single follow-up run.
type Watcher struct {
	root     string
	debounce time.Duration
	interval time.Duration
	sync     SyncFunc

	mu    sync.Mutex
	timer *time.Timer
	req   chan string
}

// New creates a watcher for the vault at root. A zero interval disables the
// periodic resync.
func New(root string, debounce, interval time.Duration, fn SyncFunc) *Watcher {
	return &Watcher{
		root:     root,
		debounce: debounce,
		interval: interval,
		sync:     fn,
		req:      make(chan string, 1),
	}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return fmt.Errorf("resolve vault dir: %w", err)
	}
	if st, statErr := os.Stat(absRoot); statErr != nil || !st.IsDir() {
		return fmt.Errorf("vault dir not found or not a directory: %s", absRoot)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := addDirsRecursive(watcher, absRoot); err != nil {
		return err
	}

	if w.interval > 0 {
		scheduler, err := w.startScheduler()
		if err != nil {
			return err
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.worker(ctx)
	}()
	w.request(ReasonInitial)

	slog.Info("Watching vault for changes", logfields.Source(absRoot), slog.Duration("debounce", w.debounce), slog.Duration("interval", w.interval))
	err = w.loop(ctx, watcher, absRoot)
	w.stopTimer()
	<-done
	return err
}

func (w *Watcher) startScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.request, ReasonInterval),
		gocron.WithName("vault-resync"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic sync job: %w", err)
	}
	s.Start()
	return s, nil
}

// loop handles filesystem events until ctx is cancelled.
func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher, absRoot string) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping vault watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(watcher, absRoot, ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// handleFileEvent processes a filesystem event and triggers a sync if needed.
func (w *Watcher) handleFileEvent(watcher *fsnotify.Watcher, absRoot string, ev fsnotify.Event) {
	rel, err := filepath.Rel(absRoot, ev.Name)
	if err != nil || shouldIgnoreEvent(rel) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
			w.debounced()
			return
		}
	}
	if !affectsNotes(rel) {
		return
	}
	slog.Debug("Vault change detected", logfields.Path(filepath.ToSlash(rel)), slog.String("op", ev.Op.String()))
	w.debounced()
}

// debounced requests a sync once no event has arrived for the debounce period.
func (w *Watcher) debounced() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.request(ReasonChange) })
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// request queues a run; a run already queued absorbs it.
func (w *Watcher) request(reason string) {
	select {
	case w.req <- reason:
	default:
	}
}

// worker executes queued runs one at a time.
func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.req:
			start := time.Now()
			if err := w.sync(ctx, reason); err != nil {
				slog.Warn("sync run failed", slog.String("reason", reason), logfields.Error(err))
				continue
			}
			slog.Debug("sync run finished", slog.String("reason", reason), logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for events that cannot change the sync
// result: hidden paths and editor temp/swap files.
func shouldIgnoreEvent(rel string) bool {
	if rel == "." || docs.IsHiddenPath(rel) {
		return true
	}

	base := filepath.Base(rel)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")
}

// affectsNotes reports whether a change at rel can alter the set of notes:
// a note itself, or an extensionless path that may be a removed or renamed
// directory. Attachments are ignored; the interval resync catches anything
// this misses.
func affectsNotes(rel string) bool {
	return filepath.Ext(rel) == "" || docs.IsNotePath(rel)
}
