package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/hoverline/internal/sched"
)

// reloadDebounce coalesces the burst of write events editors emit when
// saving a file.
const reloadDebounce = 100 * time.Millisecond

// Observer is called with the new configuration after a successful reload.
type Observer func(cfg Config)

// Watcher reloads a configuration file when it changes on disk and
// notifies subscribed observers. A reload that fails to parse or validate
// is logged and the previous configuration stands.
type Watcher struct {
	mu        sync.Mutex
	path      string
	current   Config
	observers []Observer
	fsw       *fsnotify.Watcher
	debounce  *sched.Debouncer
	logf      func(format string, args ...any)
	done      chan struct{}
	closed    bool
}

// Watch loads path and begins watching it for changes. logf may be nil,
// in which case log.Printf is used.
func Watch(path string, logf func(format string, args ...any)) (*Watcher, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	// Watch the directory rather than the file: editors replace files on
	// save, which drops file-level watches.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	if logf == nil {
		logf = log.Printf
	}
	w := &Watcher{
		path:     path,
		current:  cfg,
		fsw:      fsw,
		debounce: sched.NewDebouncer(reloadDebounce),
		logf:     logf,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Config returns the most recently loaded configuration.
func (w *Watcher) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Subscribe registers fn to be called after each successful reload.
func (w *Watcher) Subscribe(fn Observer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, fn)
}

// Close stops watching. Pending debounced reloads are cancelled.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.debounce.Cancel()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounce.Schedule(w.reload)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logf("config: watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.logf("config: reload failed, keeping previous: %v", err)
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.current = cfg
	observers := make([]Observer, len(w.observers))
	copy(observers, w.observers)
	w.mu.Unlock()

	for _, fn := range observers {
		fn(cfg)
	}
}
