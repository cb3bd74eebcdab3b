package hierarchy

import (
	"sync"
)

// Synced is a thread-safe wrapper around a Store. It also allows swapping
// the underlying store, so a freshly loaded tree can replace the live one.
type Synced[K comparable, T any] struct {
	mu      sync.RWMutex
	current *Store[K, T]
}

func NewSynced[K comparable, T any](initial *Store[K, T]) *Synced[K, T] {
	return &Synced[K, T]{current: initial}
}

// Swap atomically replaces the current store and returns the previous one.
func (w *Synced[K, T]) Swap(next *Store[K, T]) *Store[K, T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.current
	w.current = next
	return prev
}

// SetData delegates to the current store.
func (w *Synced[K, T]) SetData(records []T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current.SetData(records)
}

// Append delegates to the current store.
func (w *Synced[K, T]) Append(item T) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.Append(item)
}

// Replace delegates to the current store.
func (w *Synced[K, T]) Replace(item T) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.Replace(item)
}

// Remove delegates to the current store.
func (w *Synced[K, T]) Remove(key K) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.Remove(key)
}

// MoveTo delegates to the current store.
func (w *Synced[K, T]) MoveTo(key, newParentKey K) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.MoveTo(key, newParentKey)
}

// Toggle delegates to the current store.
func (w *Synced[K, T]) Toggle(key K) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.Toggle(key)
}

// HierarchyList delegates to the current store.
func (w *Synced[K, T]) HierarchyList() []Row[K, T] {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.HierarchyList()
}

// Nodes delegates to the current store.
func (w *Synced[K, T]) Nodes() []*Node[T] {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Nodes()
}

// Get delegates to the current store.
func (w *Synced[K, T]) Get(key K) (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Get(key)
}

// Len delegates to the current store.
func (w *Synced[K, T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Len()
}
