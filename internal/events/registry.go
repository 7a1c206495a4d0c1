package events

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ironforge/authority/status"
)

// Handle is an opaque registration identity, minted by NewHandle and
// threaded from Register through to a later Unregister.
type Handle = uuid.UUID

// NewHandle mints a fresh registration identity.
func NewHandle() Handle {
	return uuid.New()
}

// Registry is a set of callbacks of type T, keyed by Handle, under a
// dedicated reader/writer lock. The zero value is not usable; use
// NewRegistry.
type Registry[T any] struct {
	mu        sync.RWMutex
	callbacks map[Handle]T
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{callbacks: make(map[Handle]T)}
}

// Register adds fn under handle. It reports CallbackAlreadyExist if handle
// is already registered (in this set; nothing stops the same handle value
// being used across different event kinds' sets) and does not overwrite
// the existing callback.
func (r *Registry[T]) Register(handle Handle, fn T) status.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.callbacks[handle]; exists {
		return status.CallbackAlreadyExist
	}
	r.callbacks[handle] = fn
	return status.Success
}

// Unregister removes handle, reporting CallbackNotFound if it was never
// registered (or already removed).
func (r *Registry[T]) Unregister(handle Handle) status.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.callbacks[handle]; !exists {
		return status.CallbackNotFound
	}
	delete(r.callbacks, handle)
	return status.Success
}

// Range calls visit once for every registered callback, holding the read
// lock for the whole call. visit must not call back into this Registry.
func (r *Registry[T]) Range(visit func(T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fn := range r.callbacks {
		visit(fn)
	}
}

// Len reports how many callbacks are currently registered.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks)
}
