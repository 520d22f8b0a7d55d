package dev

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the directories to watch, recursively.
	Paths []string

	// Debounce is the quiet period before a burst of changes triggers the
	// callback.
	Debounce time.Duration
}

// Watcher monitors the routes tree for changes and coalesces bursts of
// filesystem events (editors write several times per save) into single
// change notifications.
type Watcher struct {
	config   WatcherConfig
	onChange func(path string)
	log      *slog.Logger
	fs       *fsnotify.Watcher
}

// NewWatcher creates a file watcher over the configured paths.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config: config,
		log:    slog.Default().With("component", "watcher"),
		fs:     fs,
	}

	for _, root := range config.Paths {
		if err := w.addRecursive(root); err != nil {
			fs.Close()
			return nil, err
		}
	}
	return w, nil
}

// OnChange sets the callback invoked with the path of a changed file.
func (w *Watcher) OnChange(fn func(path string)) {
	w.onChange = fn
}

// Run processes filesystem events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending string
	)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ignored(ev.Name) {
				continue
			}
			// New directories must be registered for recursion.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(ev.Name); err != nil {
						w.log.Warn("cannot watch new directory", "dir", ev.Name, "error", err)
					}
				}
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = ev.Name
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.config.Debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-timerCh:
			timer = nil
			timerCh = nil
			if w.onChange != nil {
				w.onChange(pending)
			}
		}
	}
}

// addRecursive registers root and all its subdirectories.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("skipping unwatchable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() || ignored(path) {
			return nil
		}
		return w.fs.Add(path)
	})
}

// ignored filters out editor junk and VCS internals.
func ignored(path string) bool {
	base := filepath.Base(path)
	if base == ".git" || base == "node_modules" {
		return true
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp") {
		return true
	}
	return false
}
