// Package watch re-runs a callback when selected source files change.
package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"chainalign/internal/config"
)

// DefaultDebounce groups bursts of editor writes into one callback.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches directory trees and reports changed files selected by a
// config.Matcher. Callbacks never run concurrently.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	matcher    *config.Matcher
	debounce   time.Duration
	onChange   func([]string)
	callbackMu sync.Mutex
	log        *slog.Logger

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
	closed    bool // guarded by pendingMu
	done      chan struct{}
}

// NewWatcher returns a Watcher; onChange receives sorted, de-duplicated paths.
func NewWatcher(debounce time.Duration, matcher *config.Matcher, logger *slog.Logger, onChange func([]string)) (*Watcher, error) {
	if onChange == nil || matcher == nil {
		return nil, os.ErrInvalid
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		matcher:   matcher,
		debounce:  debounce,
		onChange:  onChange,
		log:       logger,
		pending:   make(map[string]struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers every non-excluded directory under paths and starts the
// event loop.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		if err := w.watchRecursive(path); err != nil {
			return err
		}
	}
	go w.run()
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.matcher.SkipDir(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.matcher.SkipDir(event.Name) {
				return
			}
			if err := w.watchRecursive(event.Name); err != nil {
				w.log.Warn("failed to watch new directory", slog.String("path", event.Name), slog.Any("error", err))
				return
			}
			w.enqueueExistingFiles(event.Name)
			return
		}
	}
	if !w.matcher.Match(event.Name) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.scheduleChange(event.Name)
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.closed {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	if w.closed {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	if w.isClosed() {
		return
	}
	w.onChange(paths)
}

func (w *Watcher) isClosed() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return w.closed
}

func (w *Watcher) enqueueExistingFiles(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if w.matcher.Match(path) {
			w.scheduleChange(path)
		}
		return nil
	})
}

// Close stops the event loop and drops pending changes. It waits for a
// callback that is already running, so onChange must not call Close. No
// callback starts after Close returns.
func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	w.callbackMu.Lock()
	//nolint:staticcheck // empty critical section waits for a running callback
	w.callbackMu.Unlock()
	return w.fsWatcher.Close()
}

// Done is closed when the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}
