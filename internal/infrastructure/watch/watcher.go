// Package watch keeps the per-system game gauge current by watching the ROM
// tree for changes. It is observability only: request handlers never consult
// it, every listing re-scans the filesystem itself.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/emuhub/emuhub/internal/api/metrics"
	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/ports"
)

const rescanDelay = 2 * time.Second

// LibraryWatcher watches the ROM root and each system directory. File events
// are debounced per system and trigger a rescan that refreshes the
// games-indexed gauge and logs the new count.
type LibraryWatcher struct {
	scanner   ports.Scanner
	registry  *domain.Registry
	romsDir   string
	logger    zerolog.Logger
	lastEvent atomic.Int64
	rescans   atomic.Int64

	mu         sync.Mutex
	debouncers map[string]*debouncer
}

func NewLibraryWatcher(scanner ports.Scanner, registry *domain.Registry, romsDir string, logger zerolog.Logger) *LibraryWatcher {
	return &LibraryWatcher{
		scanner:    scanner,
		registry:   registry,
		romsDir:    romsDir,
		logger:     logger,
		debouncers: make(map[string]*debouncer),
	}
}

// Start seeds the gauge with an initial scan and launches the watch loop.
// The loop stops when ctx is cancelled.
func (w *LibraryWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, desc := range w.registry.All() {
		w.rescan(ctx, desc.ID)
	}

	if err := watcher.Add(w.romsDir); err != nil {
		watcher.Close()
		return err
	}
	for _, desc := range w.registry.All() {
		dir := filepath.Join(w.romsDir, desc.ID)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if err := watcher.Add(dir); err != nil {
				w.logger.Warn().Err(err).Str("dir", dir).Msg("cannot watch system directory")
			}
		}
	}

	go w.run(ctx, watcher)
	return nil
}

// LastEventUnix returns the unix time of the most recent relevant event, or
// zero when none has been seen.
func (w *LibraryWatcher) LastEventUnix() int64 { return w.lastEvent.Load() }

// Rescans returns how many system rescans the watcher has performed.
func (w *LibraryWatcher) Rescans() int64 { return w.rescans.Load() }

func (w *LibraryWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			systemID := w.systemFor(event.Name)
			if systemID == "" {
				continue
			}
			w.lastEvent.Store(time.Now().Unix())

			// A system directory created after startup must itself be watched.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						w.logger.Warn().Err(err).Str("dir", event.Name).Msg("cannot watch new directory")
					}
				}
			}

			w.logger.Debug().Str("system", systemID).Str("path", event.Name).Str("op", event.Op.String()).Msg("library change")
			w.debounce(systemID, func() { w.rescan(ctx, systemID) })

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// systemFor maps an event path to the registered system whose directory it
// falls under, or "" when the path is outside any system directory.
func (w *LibraryWatcher) systemFor(p string) string {
	rel, err := filepath.Rel(w.romsDir, p)
	if err != nil || rel == "." {
		return ""
	}
	first := rel
	if idx := indexSeparator(rel); idx >= 0 {
		first = rel[:idx]
	}
	if _, ok := w.registry.Lookup(first); !ok {
		return ""
	}
	return first
}

func indexSeparator(p string) int {
	for i := 0; i < len(p); i++ {
		if os.IsPathSeparator(p[i]) {
			return i
		}
	}
	return -1
}

func (w *LibraryWatcher) rescan(ctx context.Context, systemID string) {
	games, err := w.scanner.Scan(ctx, systemID)
	if err != nil {
		w.logger.Warn().Err(err).Str("system", systemID).Msg("rescan failed")
		return
	}
	metrics.GamesIndexed.WithLabelValues(systemID).Set(float64(len(games)))
	w.rescans.Inc()
	w.logger.Info().Str("system", systemID).Int("games", len(games)).Msg("library rescanned")
}

func (w *LibraryWatcher) debounce(systemID string, fn func()) {
	w.mu.Lock()
	d, ok := w.debouncers[systemID]
	if !ok {
		d = newDebouncer(rescanDelay)
		w.debouncers[systemID] = d
	}
	w.mu.Unlock()
	d.do(fn)
}

// debouncer collapses bursts of events into one trailing call.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}
