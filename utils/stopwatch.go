package utils

import (
	"sync"
	"time"
)

// Watch is a pausable stopwatch. Elapsed excludes paused time,
// AbsoluteElapsed does not.
type Watch struct {
	mu       sync.Mutex
	paused   bool
	pausedAt time.Time
	started  time.Time
	adjusted time.Time
}

func (w *Watch) Start() {
	w.mu.Lock()
	if w.paused {
		panic("watch cant start because paused")
	}
	w.started = time.Now()
	w.adjusted = w.started
	w.mu.Unlock()
}

func (w *Watch) Elapsed() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		return w.pausedAt.Sub(w.adjusted)
	}
	return time.Since(w.adjusted)
}

func (w *Watch) AbsoluteElapsed() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Since(w.started)
}

// Pause stops the working clock; returns the elapsed working time so far.
func (w *Watch) Pause() time.Duration {
	w.mu.Lock()
	if w.paused {
		panic("watch already paused")
	}
	w.pausedAt = time.Now()
	w.paused = true
	w.mu.Unlock()
	return w.pausedAt.Sub(w.adjusted)
}

func (w *Watch) UnPause() {
	w.mu.Lock()
	if !w.paused {
		panic("watch wasn't paused")
	}
	w.paused = false
	w.adjusted = w.adjusted.Add(time.Since(w.pausedAt))
	w.mu.Unlock()
}
