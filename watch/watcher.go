// Package watch keeps story files stamped while they are being edited.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/tlog/endeavor"
	"github.com/c360studio/tlog/journal"
	"github.com/c360studio/tlog/tldoc"
)

const (
	// stampedChannelBuffer is the size of the stamped event channel.
	stampedChannelBuffer = 100

	// DefaultDebounceDelay is used when Config leaves it unset.
	DefaultDebounceDelay = 500 * time.Millisecond
)

// Config configures a StoryWatcher.
type Config struct {
	// DebounceDelay is how long changes collect before story files are
	// stamped.
	DebounceDelay time.Duration

	// ExcludeDirs lists directory names to skip. Hidden directories are
	// always skipped.
	ExcludeDirs []string

	// DocOptions are passed to the story parser.
	DocOptions []tldoc.Option
}

// StoryWatcher watches an endeavor tree and re-stamps story files with
// endeavor.LoadAndResaveStory when they change. A stamp that changes nothing
// is not written, so the watcher's own writes settle after one round.
type StoryWatcher struct {
	root     string
	config   Config
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	excludes map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	stamped chan string

	stampCount   atomic.Int64
	droppedCount atomic.Int64
}

// NewStoryWatcher creates a watcher for the endeavor tree at root.
func NewStoryWatcher(root string, config Config, logger *slog.Logger) (*StoryWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = DefaultDebounceDelay
	}
	excludes := map[string]bool{".git": true}
	for _, dir := range config.ExcludeDirs {
		excludes[dir] = true
	}
	return &StoryWatcher{
		root:     root,
		config:   config,
		watcher:  fsw,
		logger:   logger,
		excludes: excludes,
		pending:  make(map[string]fsnotify.Op),
		stamped:  make(chan string, stampedChannelBuffer),
	}, nil
}

// Stamped returns the paths of story files rewritten by the watcher. The
// channel is closed when the watcher stops.
func (w *StoryWatcher) Stamped() <-chan string {
	return w.stamped
}

// Start adds watches for the tree and begins processing events until ctx is
// done or Stop is called.
func (w *StoryWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return err
	}
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}
	go w.processEvents(ctx)

	w.logger.Info("Story watcher started",
		"root", w.root,
		"debounce", w.config.DebounceDelay)
	return nil
}

// Stop closes the underlying watcher.
func (w *StoryWatcher) Stop() error {
	return w.watcher.Close()
}

// StampCount returns the number of story files rewritten so far.
func (w *StoryWatcher) StampCount() int64 {
	return w.stampCount.Load()
}

// DroppedEvents returns the number of stamped events dropped because the
// channel was full.
func (w *StoryWatcher) DroppedEvents() int64 {
	return w.droppedCount.Load()
}

func (w *StoryWatcher) skipDir(path string) bool {
	base := filepath.Base(path)
	return w.excludes[base] || (strings.HasPrefix(base, ".") && path != w.root)
}

func (w *StoryWatcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func (w *StoryWatcher) processEvents(ctx context.Context) {
	defer close(w.stamped)
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// isStory reports whether path names a story file.
func isStory(path string) bool {
	ok, _ := doublestar.Match(journal.StoryGlob, filepath.Base(path))
	return ok
}

func (w *StoryWatcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name
	if !isStory(path) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !w.skipDir(path) {
				if err := w.addWatchesRecursive(path); err != nil {
					w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
				}
			}
		}
		return
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Story change detected", "path", path, "op", event.Op.String())
}

func (w *StoryWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path := range toProcess {
		if ctx.Err() != nil {
			return
		}
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			continue
		}
		_, written, err := endeavor.LoadAndResaveStory(path, w.config.DocOptions...)
		if err != nil {
			w.logger.Warn("Failed to stamp story", "path", path, "error", err)
			continue
		}
		if !written {
			continue
		}
		w.stampCount.Add(1)
		w.logger.Info("Story stamped", "path", path)
		w.sendStamped(path)
	}
}

func (w *StoryWatcher) sendStamped(path string) {
	select {
	case w.stamped <- path:
	default:
		dropped := w.droppedCount.Add(1)
		w.logger.Warn("Stamped channel full, dropping event",
			"path", path,
			"total_dropped", dropped)
	}
}
