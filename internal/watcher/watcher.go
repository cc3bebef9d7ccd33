// Package watcher watches notebook sources and reports when a rebuild is
// warranted. Used by `labbook note build --watch`.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// sourceExtensions are the notebook files whose changes trigger a
// rebuild. Everything else (images, build output) is ignored.
var sourceExtensions = map[string]bool{
	".rst": true,
	".md":  true,
	".py":  true,
}

// Watcher reports batched change events for a notebook directory.
// Bursts of writes (editors save several times, Sphinx touches many
// files) collapse into a single event per debounce window.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	Rebuild chan struct{}
	Errors  chan error

	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// New creates a watcher with the given debounce window.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsWatcher,
		debounce: debounce,
		Rebuild:  make(chan struct{}, 1),
		Errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}, nil
}

// WatchNotebook watches notebookDir and its subdirectories, skipping the
// build output directory. New experiment directories created while
// watching are picked up as they appear.
func (w *Watcher) WatchNotebook(notebookDir string) error {
	if _, err := os.Stat(notebookDir); err != nil {
		return fmt.Errorf("notebook directory does not exist: %w", err)
	}

	return filepath.WalkDir(notebookDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == "build" || strings.HasPrefix(d.Name(), ".") {
			if path != notebookDir {
				return filepath.SkipDir
			}
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Start begins delivering events. Safe to call once.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.eventLoop()
}

func (w *Watcher) eventLoop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			// A new experiment directory needs its own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			// Restart the debounce window on every relevant event.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			select {
			case w.Rebuild <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// relevant filters events down to source-file writes and new
// directories.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if strings.Contains(event.Name, string(filepath.Separator)+"build"+string(filepath.Separator)) {
		return false
	}

	// Directory creation matters (new experiments); otherwise only
	// source extensions do.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return true
		}
	}
	return sourceExtensions[strings.ToLower(filepath.Ext(base))]
}

// Stop stops delivering events and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	close(w.done)
	w.running = false
	return w.watcher.Close()
}
