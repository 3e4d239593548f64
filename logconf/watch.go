package logconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golift.io/applog"
)

// DefaultDebounce is how long the file must be quiet before it is reloaded.
// Editors often produce several events per save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(*applog.Config)
	onError  func(error)
	watcher  *fsnotify.Watcher
	stop     chan struct{}
	start    sync.Once
	halt     sync.Once
	wg       sync.WaitGroup
}

// WatchOption changes a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a reload. Values <= 0 are ignored.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch returns a Watcher for the config file at path. Call Start to begin
// and Stop when done. onChange gets every successfully parsed version of the
// file. onError gets parse and watch failures; nil prints them to stderr.
// The parent folder is watched so editors that replace the file still work.
func Watch(path string, onChange func(*applog.Config), onError func(error), opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if onChange == nil {
		return nil, ErrNilCallback
	}

	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}

	if onError == nil {
		onError = func(err error) { fmt.Fprintf(os.Stderr, "Failed to reload log config: %v\n", err) }
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %s: %w", ErrWatch, dir, err), watcher.Close())
	}

	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  onError,
		watcher:  watcher,
		stop:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start runs the watcher in a go routine and returns. Calling it again does nothing.
func (w *Watcher) Start() {
	w.start.Do(func() {
		w.wg.Add(1)

		go w.run()
	})
}

// Stop ends the go routine and releases the file system watch.
// No callbacks run after Stop returns. Do not call Stop from a callback.
func (w *Watcher) Stop() error {
	var err error

	w.halt.Do(func() {
		close(w.stop)
		w.wg.Wait()

		if closeErr := w.watcher.Close(); closeErr != nil {
			err = fmt.Errorf("%w: closing: %w", ErrWatch, closeErr)
		}
	})

	return err
}

// run owns the debounce timer, so reloads never overlap.
func (w *Watcher) run() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
		name  = filepath.Base(w.path)
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != name ||
				!event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.onError(fmt.Errorf("%w: %w", ErrWatch, err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	config, err := Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}

	w.onChange(config)
}
