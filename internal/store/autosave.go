package store

import (
	"sync"
	"time"

	"github.com/idilsaglam/todoish/internal/model"
	"github.com/idilsaglam/todoish/internal/store/jsonstore"
)

// DefaultAutosaveDelay matches the original app's save cadence.
const DefaultAutosaveDelay = 3 * time.Second

// Autosaver coalesces mutations into deferred writes: each Mark records a
// snapshot and arms a timer; when it fires, the latest snapshot is written.
// The in-memory state stays authoritative; write failures go to warn.
// Only the timer callback or Flush writes, never both at once.
type Autosaver struct {
	path  string
	delay time.Duration
	warn  func(error)

	mu      sync.Mutex
	pending []model.TodoList
	dirty   bool
	timer   *time.Timer
}

// NewAutosaver writes snapshots to path after delay. warn receives
// non-fatal persistence errors; nil means discard them.
func NewAutosaver(path string, delay time.Duration, warn func(error)) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if warn == nil {
		warn = func(error) {}
	}
	return &Autosaver{path: path, delay: delay, warn: warn}
}

// Mark records the state to persist and schedules a write. Later Marks
// within the delay window replace the snapshot without rearming the timer,
// so a burst of edits produces one write.
func (a *Autosaver) Mark(lists []model.TodoList) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = lists
	a.dirty = true
	if a.timer == nil {
		a.timer = time.AfterFunc(a.delay, a.fire)
	}
}

func (a *Autosaver) fire() {
	if err := a.Flush(); err != nil {
		a.warn(err)
	}
}

// Flush writes the pending snapshot now, if any.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if !a.dirty {
		return nil
	}
	if err := jsonstore.Save(a.path, a.pending); err != nil {
		return err
	}
	a.dirty = false
	a.pending = nil
	return nil
}

// Stop cancels the timer and performs a final flush.
func (a *Autosaver) Stop() error { return a.Flush() }
