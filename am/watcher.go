package am

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/logger"
	"github.com/teranos/buildcfg/preset"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 500 * time.Millisecond

// ReloadCallback receives the table rebuilt from the presets file, or the
// error that prevented rebuilding it. table is nil when err is not.
type ReloadCallback func(table *preset.Table, err error)

// PresetsWatcher watches a presets file and rebuilds the preset table when it changes.
// Each rebuild yields a new table; previously delivered tables are never modified.
type PresetsWatcher struct {
	path        string
	toolVersion string
	watcher     *fsnotify.Watcher

	mu             sync.Mutex
	callbacks      []ReloadCallback
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	started        bool
	stopped        bool

	done chan struct{}
}

// NewPresetsWatcher creates a watcher for the presets file at path.
// The containing directory is watched so editors that replace the file on save are seen.
func NewPresetsWatcher(path, toolVersion string) (*PresetsWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	return &PresetsWatcher{
		path:           abs,
		toolVersion:    toolVersion,
		watcher:        w,
		debouncePeriod: DefaultDebounce,
		done:           make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce period; call before Start
func (pw *PresetsWatcher) SetDebounce(d time.Duration) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	pw.debouncePeriod = d
}

// OnReload registers a callback to be called after each rebuild
func (pw *PresetsWatcher) OnReload(callback ReloadCallback) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	pw.callbacks = append(pw.callbacks, callback)
}

// Start begins watching for changes
func (pw *PresetsWatcher) Start() {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.started || pw.stopped {
		return
	}
	pw.started = true
	go pw.watchLoop()
}

// Path returns the absolute path being watched
func (pw *PresetsWatcher) Path() string {
	return pw.path
}

func (pw *PresetsWatcher) watchLoop() {
	defer close(pw.done)
	log := logger.ChildLogger(logger.ComponentLogger("am.watcher"), logger.FieldFile, pw.path)

	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != pw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debugw("Presets file changed", logger.FieldOperation, event.Op.String())
			pw.scheduleReload()

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			log.Warnw("Presets watcher error", logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes and triggers reload
func (pw *PresetsWatcher) scheduleReload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.stopped {
		return
	}
	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}
	pw.debounceTimer = time.AfterFunc(pw.debouncePeriod, pw.reload)
}

// reload rebuilds the table and calls all callbacks
func (pw *PresetsWatcher) reload() {
	table, err := preset.LoadTable(pw.path, pw.toolVersion)
	if err != nil {
		logger.Errorw("Presets reload failed", logger.FieldFile, pw.path, logger.FieldError, err)
	} else {
		logger.Infow("Presets reloaded", logger.FieldFile, pw.path, logger.FieldCount, table.Len())
	}

	pw.mu.Lock()
	if pw.stopped {
		pw.mu.Unlock()
		return
	}
	callbacks := append([]ReloadCallback(nil), pw.callbacks...)
	pw.mu.Unlock()

	for _, callback := range callbacks {
		callback(table, err)
	}
}

// Stop stops watching and waits for the event loop to exit
func (pw *PresetsWatcher) Stop() error {
	pw.mu.Lock()
	pw.stopped = true
	started := pw.started
	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}
	pw.mu.Unlock()

	err := pw.watcher.Close()
	if started {
		<-pw.done
	}
	return err
}
