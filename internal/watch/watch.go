// Package watch re-runs validation when tables under a folder change.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Paths are files or directories to watch. Directories are watched
	// recursively.
	Paths []string
	// Extensions limits events to these lowercase extensions, e.g. ".csv".
	// Empty accepts every file.
	Extensions []string
	// TempPrefix skips files whose base name starts with it.
	TempPrefix string
	Debounce   time.Duration
	Logger     *slog.Logger
}

// Watcher batches file-system events into change notifications.
type Watcher struct {
	opts   Options
	files  map[string]bool // explicitly watched files
	logger *slog.Logger
}

// New creates a Watcher.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{opts: opts, files: make(map[string]bool), logger: logger}
}

// Run watches until ctx is cancelled. onChange is called from the
// watching goroutine with the sorted set of paths that changed during one
// debounce window; calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range w.opts.Paths {
		if err := w.add(watcher, p); err != nil {
			return err
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.accept(event.Name) {
				continue
			}
			w.logger.Debug("file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = true
			timer.Reset(w.opts.Debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) add(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if info.IsDir() {
		if err := watchDirRecursive(watcher, path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	}
	// Editors replace files on save, so watch the parent directory.
	w.files[filepath.Clean(path)] = true
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return nil
}

func (w *Watcher) accept(path string) bool {
	base := filepath.Base(path)
	if w.opts.TempPrefix != "" && strings.HasPrefix(base, w.opts.TempPrefix) {
		return false
	}
	if len(w.files) > 0 && w.files[filepath.Clean(path)] {
		return true
	}
	if len(w.opts.Extensions) > 0 && !slices.Contains(w.opts.Extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	// A file-only watch ignores siblings in the parent directory.
	if len(w.files) > 0 && !w.underWatchedDir(path) {
		return false
	}
	return true
}

func (w *Watcher) underWatchedDir(path string) bool {
	for _, p := range w.opts.Paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			rel, err := filepath.Rel(p, path)
			if err == nil && !strings.HasPrefix(rel, "..") {
				return true
			}
		}
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
