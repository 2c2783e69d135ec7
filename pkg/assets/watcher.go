package assets

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow collapses the burst of filesystem events one editor save
// produces for a file into a single reload notification.
const debounceWindow = 100 * time.Millisecond

// Watcher reports changes to catalog files in the watched directories, so
// running applications can hot-reload their animation catalogs.
//
// Events and Errors are owned by the watcher's forwarding goroutine: after
// Close they are closed from there, never from Close itself, so shutdown is
// safe even when a consumer has stopped draining while notifications are
// still pending. Consumers may simply range over Events.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	Events chan string
	Errors chan error
}

// NewWatcher watches the given directories for catalog file changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fs,
		done:   make(chan struct{}),
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
	}
	go w.run()
	return w, nil
}

// Close stops watching. Safe to call repeatedly, and safe while the
// forwarding goroutine is blocked on an undrained notification: Close only
// signals shutdown, and the goroutine closes Events and Errors on its way
// out.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// run forwards filtered, debounced filesystem events until Close. Every
// outbound send is guarded by the done channel so shutdown never deadlocks
// against a full buffer, and the outbound channels are closed here after the
// last send.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)

	lastSent := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !shouldForward(event, lastSent) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// shouldForward applies the catalog-file filter and per-file debounce.
func shouldForward(event fsnotify.Event, lastSent map[string]time.Time) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if ext := strings.ToLower(filepath.Ext(event.Name)); ext != ".yaml" && ext != ".yml" {
		return false
	}
	now := time.Now()
	if t, ok := lastSent[event.Name]; ok && now.Sub(t) < debounceWindow {
		return false
	}
	lastSent[event.Name] = now
	return true
}
