package assets

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/logger"
)

// Watcher reports when a watched assembly file changes on disk. Only one
// file is watched at a time. Bursts of events collapse into a single
// pending notification.
type Watcher struct {
	watch   *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	log     *zap.Logger

	mu   sync.Mutex
	file string
	dir  string
}

// NewWatcher starts a watcher with nothing watched.
func NewWatcher() (*Watcher, error) {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	w := &Watcher{
		watch:   watch,
		changed: make(chan string, 1),
		done:    make(chan struct{}),
		log:     logger.Named("watcher"),
	}
	go w.run()
	return w, nil
}

// Watch replaces the watched file. Editors often save by renaming, so the
// file's directory is watched and events are filtered by name.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir != "" && w.dir != dir {
		_ = w.watch.Remove(w.dir)
	}
	if w.dir != dir {
		if err := w.watch.Add(dir); err != nil {
			w.dir = ""
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.file, w.dir = abs, dir
	w.log.Debug("watching", zap.String("file", abs))
	return nil
}

// Unwatch stops watching the current file.
func (w *Watcher) Unwatch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir != "" {
		_ = w.watch.Remove(w.dir)
	}
	w.file, w.dir = "", ""
}

// Changed delivers the path of the watched file after it changes.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watch.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watch.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			file := w.file
			w.mu.Unlock()
			if file == "" || filepath.Clean(event.Name) != file {
				continue
			}
			select {
			case w.changed <- file:
			default:
			}
		case err, ok := <-w.watch.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}
