package concurrent

// Accumulators for fork-join parallel phases.
//
// During the concurrent phase, many goroutines insert into a shared container.
// The API never hands out a pointer, slice, or iterator into live storage, so
// nothing a goroutine holds can be invalidated by someone else's insert.
// After the join barrier, the owning goroutine calls Consume, which detaches
// everything accumulated as a plain map (exclusively owned, no locking) and
// resets the container for the next phase.

import (
	"sync"
)

// Map accumulates key to value associations from any number of goroutines.
// The zero value is ready to use. Writes racing on the same key resolve
// last-write-wins in lock acquisition order.
type Map[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// InsertOrAssign creates or overwrites the association for key.
func (cm *Map[K, V]) InsertOrAssign(key K, value V) {
	cm.mu.Lock()
	if cm.m == nil {
		cm.m = make(map[K]V)
	}
	cm.m[key] = value
	cm.mu.Unlock()
}

// Empty reports whether the map held no entries at the instant of the call.
// Stale as soon as it returns if inserters are still running.
func (cm *Map[K, V]) Empty() bool {
	cm.mu.Lock()
	empty := len(cm.m) == 0
	cm.mu.Unlock()
	return empty
}

// Size reports the entry count at the instant of the call. Same staleness
// caveat as Empty; two snapshot calls are not one transaction.
func (cm *Map[K, V]) Size() int {
	cm.mu.Lock()
	size := len(cm.m)
	cm.mu.Unlock()
	return size
}

// Consume atomically detaches all accumulated entries and resets the map to
// empty, ready for a new accumulation phase. The returned map is never nil
// and is exclusively the caller's; it shares no storage with the container.
// Call after the join barrier: inserters racing with Consume land in either
// this result or the next phase, unspecified which.
func (cm *Map[K, V]) Consume() map[K]V {
	cm.mu.Lock()
	out := cm.m
	cm.m = nil
	cm.mu.Unlock()
	if out == nil {
		out = make(map[K]V)
	}
	return out
}
