// Package watch re-runs a callback when Kotlin sources change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/ktsmell/internal/engine"
)

// DefaultDebounce is how long the watcher waits for more events before
// firing the callback.
const DefaultDebounce = 100 * time.Millisecond

// Func is called with the sorted set of files that changed since the last call.
type Func func(ctx context.Context, changed []string)

// Watcher watches directory trees for changes to Kotlin files.
type Watcher struct {
	roots      []string
	debounce   time.Duration
	extensions []string
	exclude    []string
	logger     *slog.Logger
}

// Config holds watcher configuration.
type Config struct {
	// Roots are the files or directories to watch
	Roots []string
	// Debounce overrides DefaultDebounce
	Debounce time.Duration
	// Extensions lists the file extensions that trigger a callback
	Extensions []string
	// Exclude holds glob patterns for directories that are not watched
	Exclude []string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a watcher.
func New(cfg Config) *Watcher {
	w := &Watcher{
		roots:      cfg.Roots,
		debounce:   cfg.Debounce,
		extensions: cfg.Extensions,
		exclude:    cfg.Exclude,
		logger:     cfg.Logger,
	}
	if len(w.roots) == 0 {
		w.roots = []string{"."}
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if len(w.extensions) == 0 {
		w.extensions = []string{".kt", ".kts"}
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	return w
}

// Run watches until ctx is cancelled, calling fn after each burst of changes.
// Callbacks never overlap.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range w.roots {
		if err := w.add(watcher, root); err != nil {
			return err
		}
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
		running sync.Mutex
	)

	fire := func() {
		mu.Lock()
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		pending = make(map[string]bool)
		mu.Unlock()

		if len(changed) == 0 || ctx.Err() != nil {
			return
		}
		sort.Strings(changed)

		running.Lock()
		defer running.Unlock()
		w.logger.Debug("files changed", "count", len(changed))
		fn(ctx, changed)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// New directories are watched as they appear
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.skipped(event.Name) {
						continue
					}
					if err := w.add(watcher, event.Name); err != nil {
						w.logger.Error("failed to watch directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}

			mu.Lock()
			pending[event.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// skipped reports whether dir is hidden or excluded below one of the roots.
func (w *Watcher) skipped(dir string) bool {
	if strings.HasPrefix(filepath.Base(dir), ".") && filepath.Base(dir) != "." {
		return true
	}
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if engine.ExcludesDir(w.exclude, filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}

// add watches root and, for directories, every subdirectory that is neither
// hidden nor excluded.
func (w *Watcher) add(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipped(path) {
			w.logger.Debug("skipping directory", "path", path)
			return filepath.SkipDir
		}
		w.logger.Debug("watching directory", "path", path)
		return watcher.Add(path)
	})
}
