package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
)

const debounceDelay = 300 * time.Millisecond

// newTemplateWatcher watches dir and every directory below it.
func newTemplateWatcher(dir string, logger *slog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	if err := addDirsRecursive(watcher, dir, logger); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) error {
	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		return ferrors.FileSystemError("templates directory not found or not a directory").
			WithContext("path", root).
			WithCause(err).
			Build()
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// handleFileEvent reports whether ev should trigger a rebuild, extending
// the watch to newly created directories.
func handleFileEvent(w *fsnotify.Watcher, ev fsnotify.Event, logger *slog.Logger) bool {
	if shouldIgnoreEvent(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w, ev.Name, logger)
		}
	}
	logger.Debug("Template change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}

// rebuildQueue coalesces rebuild requests onto a single-slot channel.
type rebuildQueue struct {
	clock clockwork.Clock
	delay time.Duration
	ch    chan struct{}

	mu    sync.Mutex
	timer clockwork.Timer
}

func newRebuildQueue(clock clockwork.Clock, delay time.Duration) *rebuildQueue {
	return &rebuildQueue{clock: clock, delay: delay, ch: make(chan struct{}, 1)}
}

// Request enqueues a rebuild unless one is already pending.
func (q *rebuildQueue) Request() {
	select {
	case q.ch <- struct{}{}:
	default:
	}
}

// Trigger requests a rebuild once no further Trigger calls arrive within the delay.
func (q *rebuildQueue) Trigger() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = q.clock.AfterFunc(q.delay, q.Request)
}

// Stop cancels a pending debounced request.
func (q *rebuildQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
}

// C delivers coalesced rebuild requests.
func (q *rebuildQueue) C() <-chan struct{} { return q.ch }
