package cache

import "sync"

// A Handle shares one cached value between callers.
//
// Readers run concurrently with each other; writers and disposal run alone.
// A Handle stays usable after its value is evicted,
// but by then the DisposeFunc has run on the value.
// Functions passed to Read and Write must not call back into the Cache.
type Handle[T any] struct {
	key string
	mu  sync.RWMutex
	val T
}

// Key returns the key the value is paired to.
func (h *Handle[T]) Key() string { return h.key }

// Load returns a copy of the value.
func (h *Handle[T]) Load() T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.val
}

// Read calls fn with the value under a shared lock.
func (h *Handle[T]) Read(fn func(T)) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	fn(h.val)
}

// Write calls fn with the value under an exclusive lock.
func (h *Handle[T]) Write(fn func(*T)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fn(&h.val)
}
