package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"fauna-warden/internal/logger"
)

// Watcher watches roster and territory files and fires a callback once
// changes have settled. Editors often emit a burst of events per save; the
// settling delay collapses the burst into one callback.
type Watcher struct {
	watcher  *fsnotify.Watcher
	paths    map[string]bool
	settling time.Duration
	onChange func(path string)
	done     chan struct{}
}

// New creates a watcher that calls onChange after events on a registered
// file settle for the given duration. Register files with Add, then call
// Start.
func New(settling time.Duration, onChange func(path string)) (*Watcher, error) {
	if settling <= 0 {
		settling = 400 * time.Millisecond
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		paths:    make(map[string]bool),
		settling: settling,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Add registers a file to watch. The parent directory is watched so that
// rename-and-replace saves are still seen. Call before Start.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.paths[abs] = true
	return w.watcher.Add(filepath.Dir(abs))
}

// Start begins processing events in the background.
func (w *Watcher) Start() {
	go w.loop()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.settling)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.paths[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[abs] = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.settling)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch", err.Error())

		case <-timer.C:
			for path := range pending {
				w.onChange(path)
			}
			pending = make(map[string]bool)
		}
	}
}
