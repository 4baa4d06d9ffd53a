package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cwarden/schedule/internal/log"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reloads a store when its backing file is changed by someone
// else. The directory is watched rather than the file because saves
// replace the file by rename.
type Watcher struct {
	watcher *fsnotify.Watcher
	store   *Store
	path    string
	done    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// Watch starts watching the file that kv uses for s.
func Watch(s *Store, kv *FileKV) (*Watcher, error) {
	path, err := filepath.Abs(kv.Path(s.Key()))
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		store:   s,
		path:    path,
		done:    make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error("store watcher", err, "path", w.path)

		case <-w.done:
			return
		}
	}
}

// schedule debounces bursts of events into a single reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		if err := w.store.Reload(context.Background()); err != nil {
			log.Error("reload after file change", err, "path", w.path)
		}
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
