package concurrent

import (
	"sync"
)

// Set accumulates unique values from any number of goroutines. The zero
// value is ready to use. Inserting a value already present is a no-op.
type Set[T comparable] struct {
	mu sync.Mutex
	m  map[T]struct{}
}

// Insert adds value to the set; duplicates are silently ignored.
func (cs *Set[T]) Insert(value T) {
	cs.mu.Lock()
	if cs.m == nil {
		cs.m = make(map[T]struct{})
	}
	cs.m[value] = struct{}{}
	cs.mu.Unlock()
}

// Empty reports whether the set held no values at the instant of the call.
func (cs *Set[T]) Empty() bool {
	cs.mu.Lock()
	empty := len(cs.m) == 0
	cs.mu.Unlock()
	return empty
}

// Size reports the value count at the instant of the call.
func (cs *Set[T]) Size() int {
	cs.mu.Lock()
	size := len(cs.m)
	cs.mu.Unlock()
	return size
}

// Consume atomically detaches all accumulated values and resets the set to
// empty, ready for a new accumulation phase. The returned membership map is
// never nil and shares no storage with the container.
func (cs *Set[T]) Consume() map[T]struct{} {
	cs.mu.Lock()
	out := cs.m
	cs.m = nil
	cs.mu.Unlock()
	if out == nil {
		out = make(map[T]struct{})
	}
	return out
}
