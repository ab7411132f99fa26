package mockmode

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	// debounceDelay gives writers time to finish before the flag is re-read.
	debounceDelay = 100 * time.Millisecond
	pollInterval  = 5 * time.Second
)

// Watcher re-resolves the mock-mode flag when another process changes it, so
// a CLI toggle shows up in a running server without a restart. File-backed
// stores are watched with fsnotify; every other backend is polled.
type Watcher struct {
	ctrl   *Controller
	path   string
	fsw    *fsnotify.Watcher
	logger zerolog.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewWatcher(ctrl *Controller, logger zerolog.Logger) *Watcher {
	path := ""
	if fb, ok := ctrl.store.(interface{ Path() string }); ok {
		path = fb.Path()
	}
	return &Watcher{
		ctrl:     ctrl,
		path:     path,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins watching in the background. Falls back to polling when the
// store has no file to watch or fsnotify cannot be set up.
func (w *Watcher) Start() {
	if w.path != "" {
		if fsw, err := fsnotify.NewWatcher(); err != nil {
			w.logger.Warn().Err(err).Msg("fsnotify unavailable; polling for mock mode changes")
		} else if err := fsw.Add(filepath.Dir(w.path)); err != nil {
			w.logger.Warn().Err(err).Str("dir", filepath.Dir(w.path)).Msg("failed to watch state directory; polling for mock mode changes")
			fsw.Close()
		} else {
			w.fsw = fsw
			w.wg.Add(1)
			go w.watchEvents()
			w.logger.Info().Str("path", w.path).Msg("watching state file for mock mode changes")
			return
		}
	}

	w.wg.Add(1)
	go w.poll()
}

// Stop shuts the watcher down and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if w.fsw != nil {
			w.fsw.Close()
		}
	})
	w.wg.Wait()
}

func (w *Watcher) watchEvents() {
	defer w.wg.Done()

	base := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Debounce so we read after the write completes.
			time.Sleep(debounceDelay)
			w.logger.Debug().Str("event", event.Op.String()).Msg("state file changed")
			w.ctrl.Refresh()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("state watcher error")

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.ctrl.Refresh()
		case <-w.stopChan:
			return
		}
	}
}
