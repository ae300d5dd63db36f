package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOp is the kind of file change a Watcher reports.
type WatchOp uint8

const (
	OpWrite WatchOp = 1 << iota
	OpCreate
	OpRemove
	OpRename
)

// Has reports whether op contains o.
func (op WatchOp) Has(o WatchOp) bool {
	return op&o != 0
}

func (op WatchOp) String() string {
	switch {
	case op.Has(OpRemove):
		return "remove"
	case op.Has(OpRename):
		return "rename"
	case op.Has(OpCreate):
		return "create"
	case op.Has(OpWrite):
		return "write"
	}
	return "unknown"
}

// WatchEvent is one debounced file change.
type WatchEvent struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("config: watcher is closed")

// Watcher reports file changes on watched paths, coalescing the bursts
// editors produce into one event per path. The app uses it to reload
// theme scripts in place while the repl is running.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	events chan WatchEvent
	errs   chan error

	mu      sync.Mutex
	closed  bool
	pending map[string]WatchEvent

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts a watcher whose events settle for debounce before
// delivery. A debounce of zero delivers immediately.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		events:   make(chan WatchEvent, 64),
		errs:     make(chan error, 16),
		pending:  make(map[string]WatchEvent),
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()
	if debounce > 0 {
		w.wg.Add(1)
		go w.debounceLoop()
	}
	return w, nil
}

// Watch adds a file or directory to the watch set.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fsw.Add(abs)
}

// Events returns the debounced change channel. It is closed by Close.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Errors returns the watch error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errs)
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			ev := WatchEvent{Path: fsEvent.Name, Op: op, Time: time.Now()}
			if w.debounce > 0 {
				w.queue(ev)
			} else {
				w.send(ev)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// queue coalesces events per path: removal beats everything, creation
// beats writes, and the timestamp always moves forward so the debounce
// window restarts on each burst.
func (w *Watcher) queue(ev WatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.pending[ev.Path]
	if ok {
		switch {
		case existing.Op.Has(OpRemove):
			ev.Op = existing.Op
		case existing.Op.Has(OpCreate) && ev.Op.Has(OpWrite):
			ev.Op = existing.Op
		}
	}
	w.pending[ev.Path] = ev
}

func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.closeCh:
			return
		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) flushSettled() {
	threshold := time.Now().Add(-w.debounce)

	w.mu.Lock()
	var settled []WatchEvent
	for path, ev := range w.pending {
		if ev.Time.Before(threshold) {
			settled = append(settled, ev)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, ev := range settled {
		w.send(ev)
	}
}

// send never blocks; a full channel drops the event, which is fine for
// reload triggers since a later change fires again.
func (w *Watcher) send(ev WatchEvent) {
	select {
	case w.events <- ev:
	default:
	}
}

func convertOp(fsOp fsnotify.Op) WatchOp {
	var op WatchOp
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
