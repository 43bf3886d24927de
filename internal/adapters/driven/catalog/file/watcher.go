package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sitesmith/internal/logger"
)

// DefaultSettle is how long the watcher waits after the last event before
// reloading. Editors often write a file in several steps.
const DefaultSettle = 100 * time.Millisecond

// ReloadFunc is invoked after the catalog file changes.
// BlockLibrary.RefreshCache has this shape.
type ReloadFunc func(ctx context.Context) error

// Watcher reloads the catalog when its file changes.
//
// The parent directory is watched rather than the file itself so that
// atomic saves (write to temp, rename over) are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	reload  ReloadFunc
	settle  time.Duration
	done    chan struct{}
	wg      sync.WaitGroup

	stopOnce sync.Once
}

// NewWatcher creates a watcher for the catalog file at path.
func NewWatcher(path string, reload ReloadFunc, settle time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    abs,
		reload:  reload,
		settle:  settle,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop ends the watch and waits for the loop to exit. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("catalog file changed: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.settle)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := w.reload(ctx); err != nil {
				logger.Warn("catalog reload failed: %v", err)
			} else {
				logger.Info("catalog reloaded from %s", w.path)
			}
			cancel()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("catalog watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
