// Package watcher provides debounced file system monitoring for watch mode.
// It wraps fsnotify with recursive directory watching so the record store
// and the metadata file can trigger recompilation on change.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the interval a path must stay quiet before its event is
// emitted.
const DefaultDebounce = 200 * time.Millisecond

var (
	// ErrNoPaths indicates no watch paths were configured.
	ErrNoPaths = errors.New("no paths configured for watching")

	// ErrPathNotExist indicates a configured watch path does not exist.
	ErrPathNotExist = errors.New("watch path does not exist")
)

// Config configures a Watcher. Paths may be directories (watched
// recursively) or single files.
type Config struct {
	Paths    []string
	Debounce time.Duration
}

// Watcher emits the path of each changed file, debounced per path.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	events   chan string

	mu      sync.Mutex
	pending map[string]*time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// New validates the configuration, registers all watch paths and starts the
// event loop.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, ErrNoPaths
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		debounce: debounce,
		events:   make(chan string, 64),
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	for _, path := range cfg.Paths {
		if err := w.add(path); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

// Events returns the channel of debounced changed-file paths. The channel
// stays open for the life of the process; Done signals shutdown.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Done is closed when the watcher has been shut down.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.mu.Lock()
		for path, timer := range w.pending {
			timer.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()
	})
	return err
}

// add registers a path; directories are walked and registered recursively.
func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotExist, path)
	}
	if !info.IsDir() {
		return w.fs.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return w.fs.Add(p)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// New subdirectories in the record store need their own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.fs.Add(event.Name)
			return
		}
	}

	w.schedule(event.Name)
}

// schedule resets the per-path debounce timer, so a burst of events for one
// file emits a single notification once it settles.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		// The events channel is never closed, so a late timer cannot
		// panic; it either delivers or observes shutdown.
		select {
		case <-w.done:
		case w.events <- path:
		}
	})
}
