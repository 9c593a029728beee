// Package watch re-runs a callback whenever a file is rewritten.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of writes TeX makes while it
// flushes a log file.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a single file.
type Watcher struct {
	path     string
	onChange func()
	debounce time.Duration
	logger   *log.Logger
}

// New creates a watcher calling onChange after path settles.
func New(path string, onChange func(), logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{path: path, onChange: onChange, debounce: DefaultDebounce, logger: logger}
}

// WithDebounce sets the debounce duration.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until ctx is cancelled. The containing directory is watched
// so that files replaced by rename are still picked up.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	w.logger.Info("watching for changes", "path", w.path)

	d := &debouncer{delay: w.debounce, fn: func() {
		w.logger.Debug("file changed", "path", w.path)
		w.onChange()
	}}
	defer d.stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if name, _ := filepath.Abs(event.Name); name != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				d.trigger()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// debouncer runs fn once a burst of triggers has been quiet for delay.
// Runs never overlap: a burst that settles while fn is still running waits
// for it to return.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex // guards timer
	timer *time.Timer
	run   sync.Mutex
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()
		d.fn()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
