package concurrent

// Variants for element types without built-in equality (or that need a
// different equivalence than their natural one). An identity projection
// supplied at construction decides which elements collide; it plays the role
// a custom hash/equality pair would. The projection runs outside the lock, so
// the critical section stays a single map operation.

import (
	"sync"

	"github.com/talagrand/CsWinRT/utils"
)

// KeyedMap is a Map whose keys are bucketed by identity(key) rather than by
// the key's own comparability. Last write wins per identity, replacing both
// the stored key and its value.
type KeyedMap[K any, I comparable, V any] struct {
	mu       sync.Mutex
	identity func(K) I
	m        map[I]utils.Pair[K, V]
}

func NewKeyedMap[K any, I comparable, V any](identity func(K) I) *KeyedMap[K, I, V] {
	return &KeyedMap[K, I, V]{
		identity: identity,
		m:        make(map[I]utils.Pair[K, V]),
	}
}

func (cm *KeyedMap[K, I, V]) InsertOrAssign(key K, value V) {
	id := cm.identity(key)
	cm.mu.Lock()
	cm.m[id] = utils.Pair[K, V]{First: key, Second: value}
	cm.mu.Unlock()
}

func (cm *KeyedMap[K, I, V]) Empty() bool {
	cm.mu.Lock()
	empty := len(cm.m) == 0
	cm.mu.Unlock()
	return empty
}

func (cm *KeyedMap[K, I, V]) Size() int {
	cm.mu.Lock()
	size := len(cm.m)
	cm.mu.Unlock()
	return size
}

// Consume detaches the accumulated entries keyed by identity. Same ownership
// transfer as Map.Consume.
func (cm *KeyedMap[K, I, V]) Consume() map[I]utils.Pair[K, V] {
	cm.mu.Lock()
	out := cm.m
	cm.m = make(map[I]utils.Pair[K, V])
	cm.mu.Unlock()
	return out
}

// KeyedSet is a Set whose membership is decided by identity(value). The first
// inserted representative of an identity is kept; later duplicates are no-ops.
type KeyedSet[T any, I comparable] struct {
	mu       sync.Mutex
	identity func(T) I
	m        map[I]T
}

func NewKeyedSet[T any, I comparable](identity func(T) I) *KeyedSet[T, I] {
	return &KeyedSet[T, I]{
		identity: identity,
		m:        make(map[I]T),
	}
}

func (cs *KeyedSet[T, I]) Insert(value T) {
	id := cs.identity(value)
	cs.mu.Lock()
	if _, ok := cs.m[id]; !ok {
		cs.m[id] = value
	}
	cs.mu.Unlock()
}

func (cs *KeyedSet[T, I]) Empty() bool {
	cs.mu.Lock()
	empty := len(cs.m) == 0
	cs.mu.Unlock()
	return empty
}

func (cs *KeyedSet[T, I]) Size() int {
	cs.mu.Lock()
	size := len(cs.m)
	cs.mu.Unlock()
	return size
}

// Consume detaches the representatives keyed by identity. Same ownership
// transfer as Set.Consume.
func (cs *KeyedSet[T, I]) Consume() map[I]T {
	cs.mu.Lock()
	out := cs.m
	cs.m = make(map[I]T)
	cs.mu.Unlock()
	return out
}
