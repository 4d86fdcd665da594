// Package watch re-lists directory views when their contents change on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/mlenz/lsview/internal/logger"
)

// debounceDelay coalesces event bursts (builds, extractions) into a single
// re-listing.
const debounceDelay = 250 * time.Millisecond

// Watcher follows one directory at a time, the one the focused pane shows.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	ignore    []glob.Glob
	changed   chan string
	stopChan  chan struct{}
	stopOnce  sync.Once

	mu  sync.Mutex
	dir string
}

// New creates a watcher. Patterns are glob syntax matched against the base
// name of whatever changed; ones that fail to compile are skipped (the config
// loader already warned about them).
func New(ignorePatterns []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		changed:   make(chan string, 1),
		stopChan:  make(chan struct{}),
	}
	for _, p := range ignorePatterns {
		if g, err := glob.Compile(p); err == nil {
			w.ignore = append(w.ignore, g)
		}
	}

	go w.loop()
	return w, nil
}

// Watch re-targets the watcher at dir, dropping the previous directory.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// The old directory may already be gone; nothing to do about it
		w.fsWatcher.Remove(w.dir)
		w.dir = ""
	}

	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.dir = dir
	logger.Debug("watching %s", dir)
	return nil
}

// Changed delivers the watched directory once its contents settle. The
// channel is closed when the watcher is closed.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.fsWatcher.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.changed)

	var timer *time.Timer
	var fire <-chan time.Time
	var pending string

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.ignored(filepath.Base(event.Name)) {
				continue
			}

			w.mu.Lock()
			pending = w.dir
			w.mu.Unlock()
			if pending == "" {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changed <- pending:
			default: // a refresh is already queued
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) ignored(name string) bool {
	for _, g := range w.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
