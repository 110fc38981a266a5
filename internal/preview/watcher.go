package preview

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one build.
type RebuildFunc func(ctx context.Context) error

// Watcher rebuilds the site when files under its directories change.
// Bursts of events collapse into one rebuild, and rebuilds never overlap.
type Watcher struct {
	dirs     []string
	rebuild  RebuildFunc
	log      *slog.Logger
	Debounce time.Duration

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over dirs. Nothing is watched until Start.
func NewWatcher(dirs []string, rebuild RebuildFunc, log *slog.Logger) *Watcher {
	return &Watcher{
		dirs:     dirs,
		rebuild:  rebuild,
		log:      log,
		Debounce: DefaultDebounce,
	}
}

// Start registers the directories and launches the event loop.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	for _, dir := range w.dirs {
		if err := addDirsRecursive(fsw, dir); err != nil {
			_ = fsw.Close()
			return err
		}
	}
	w.fsw = fsw

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(loopCtx)
	}()
	w.log.Info("watching for changes", "dirs", w.dirs)
	return nil
}

// Stop ends the event loop and waits for an in-flight rebuild.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.fsw != nil {
		_ = w.fsw.Close()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.Debounce)
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			w.log.Info("change detected; rebuilding site")
			if err := w.rebuild(ctx); err != nil {
				w.log.Warn("rebuild failed", "error", err)
			}
		}
	}
}

// relevant filters out chmod noise and registers new directories.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addDirsRecursive(w.fsw, ev.Name); err != nil {
				w.log.Warn("watch new directory", "path", ev.Name, "error", err)
			}
		}
	}
	return true
}

// addDirsRecursive watches root and every directory below it. A missing
// root is skipped.
func addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
