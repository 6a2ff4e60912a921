// Package watcher turns filesystem activity into rebuild signals.
//
// Audio files are usually exported in bursts, one per track, and a book
// must not be rebuilt while half of it is still being written. The
// watcher therefore coalesces changes: each qualifying event restarts a
// settle timer, and only a quiet period produces an Event naming every
// path that changed during the burst.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/scanner"
)

// DefaultSettleDelay is the quiet period required before a burst of
// changes is reported.
const DefaultSettleDelay = 2 * time.Second

// Event is one settled burst of library changes.
type Event struct {
	Paths []string
}

// Watcher watches book directories recursively and reports settled
// bursts of audio-file changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	log    *logger.Logger
	settle time.Duration

	mu      sync.Mutex
	changed map[string]struct{}
	timer   *time.Timer

	events chan Event
	done   chan struct{}
}

// New creates a watcher. A non-positive settle delay falls back to
// DefaultSettleDelay.
func New(settle time.Duration, log *logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "creating filesystem watcher")
	}

	return &Watcher{
		fsw:     fsw,
		log:     log,
		settle:  settle,
		changed: make(map[string]struct{}),
		events:  make(chan Event, 1),
		done:    make(chan struct{}),
	}, nil
}

// Add watches root and every directory below it. Hidden directories are
// skipped, the same rule the scanner applies.
func (w *Watcher) Add(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.CodeIO, "walking %s", root)
		}
		if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, errors.CodeIO, "watching %s", path)
		}
		w.log.Debug("watching directory", "path", path)
		return nil
	})
}

// Events returns the channel settled bursts are delivered on.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start launches the event loop. It returns immediately; the loop stops
// when the context is canceled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				w.handle(ev)
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.log.WithError(err).Warn("watch error")
			}
		}
	}()
}

// Close stops the watcher. Pending changes are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.done)
	return w.fsw.Close()
}

// handle filters one raw filesystem event. Only audio files and newly
// created directories count as changes; a new directory is also added
// to the watch since files may land in it next.
func (w *Watcher) handle(ev fsnotify.Event) {
	path := ev.Name
	if isHidden(path) {
		return
	}

	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.Add(path); err != nil {
				w.log.WithError(err).Warn("watching new directory failed", "path", path)
			}
			w.note(path)
			return
		}
	}

	if !scanner.IsAudioExt(strings.ToLower(filepath.Ext(path))) {
		return
	}
	w.note(path)
}

// note records a changed path and restarts the settle timer.
func (w *Watcher) note(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.changed[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, w.flush)
}

// flush emits the accumulated burst as a single event.
func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.changed))
	for p := range w.changed {
		paths = append(paths, p)
	}
	clear(w.changed)
	w.timer = nil
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	select {
	case w.events <- Event{Paths: paths}:
	case <-w.done:
	}
}

// isHidden reports whether any path segment starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.Clean(path), string(filepath.Separator)) {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
