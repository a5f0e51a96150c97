package docsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Run when the underlying watcher shuts down.
var ErrWatcherClosed = errors.New("file watcher closed")

// Watcher reports debounced changes to supported files under a folder.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
	lastEvent time.Time
}

// NewWatcher creates a watcher for root. A zero debounce uses the default.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = contract.DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
	}, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run watches until ctx is cancelled. onChange receives the changed paths
// once no further events arrived for the debounce window.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			contract.LogWarn("File watcher error", err)

		case now := <-ticker.C:
			if paths := w.takeSettled(now); len(paths) > 0 {
				onChange(ctx, paths)
			}
		}
	}
}

// addWatchesRecursive adds watches to root and all non-hidden sub-folders.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if base := d.Name(); strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				contract.LogWarn("Failed to watch new folder", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !ingest.IsSupported(name, "") {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.lastEvent = time.Now()
	w.pendingMu.Unlock()
}

// takeSettled drains the pending set once the debounce window has passed.
func (w *Watcher) takeSettled(now time.Time) []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) == 0 || now.Sub(w.lastEvent) < w.debounce {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]fsnotify.Op)
	return paths
}
