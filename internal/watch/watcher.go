// Package watch notices external modifications to the currently open bundle
// file so the UI can offer a reload instead of silently overwriting someone
// else's changes on the next save.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"bundledit/internal/log"

	"github.com/fsnotify/fsnotify"
)

// FileModification represents a change to the watched bundle detected on
// disk.
type FileModification struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors a single bundle file using fsnotify. The parent
// directory is watched, not the file itself, so editors that replace the
// file by rename are still seen.
type Watcher struct {
	// Channel to deliver modifications of the watched file
	fileModChan chan FileModification

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the watched path
	mutex sync.RWMutex

	// Absolute path of the watched file; empty when none
	path string

	// Whether the watcher is running
	running bool

	// Set by Stop; a stopped watcher cannot be restarted
	stopped bool
}

// New creates a new bundle file watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fileModChan: make(chan FileModification, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// SetFile switches the watcher to a different bundle file. The previous
// file's directory is dropped unless both files share it.
func (w *Watcher) SetFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	oldDir := ""
	if w.path != "" {
		oldDir = filepath.Dir(w.path)
	}
	newDir := filepath.Dir(abs)

	if oldDir != newDir {
		if oldDir != "" {
			// Best effort; the directory may already be gone.
			_ = w.fsWatcher.Remove(oldDir)
		}
		if err := w.fsWatcher.Add(newDir); err != nil {
			return err
		}
	}
	w.path = abs
	log.LogWithFields(log.F("file", abs)).Debug("watching bundle file")
	return nil
}

// FileChannel returns the channel that delivers modification events.
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins delivering events for the watched file.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running || w.stopped {
		w.mutex.Unlock()
		return nil
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	go func() {
		// The event goroutine owns the delivery channel; closing it here
		// rather than in Stop means a send can never race the close.
		defer close(w.fileModChan)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				w.mutex.RLock()
				watched := w.path
				w.mutex.RUnlock()
				if watched == "" || event.Name != watched {
					continue
				}

				mod := FileModification{
					Path:      event.Name,
					Timestamp: time.Now(),
					Op:        event.Op,
				}

				// Send non-blockingly so a stalled UI cannot wedge the loop.
				select {
				case w.fileModChan <- mod:
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("event channel is full, dropped event")
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the watcher. The event goroutine closes the event channel on
// its way out.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}

	w.running = false
	w.stopped = true
}

// IsRunning returns whether the watcher is currently active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
