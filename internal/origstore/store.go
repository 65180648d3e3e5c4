// Package origstore provides the thread-safe, in-memory store of original
// (pre-instrumentation) function implementations.
//
// # Purpose
//
// The store is the single source of truth for restoration: once an entry
// exists for an identifier, it holds the implementation that was live before
// the first instrumentation, and it keeps holding it until unstrumentation
// clears it. Re-instrumenting must never replace the entry with an
// already-wrapped implementation, which is why the only write operation is
// capture-if-absent.
//
// # Concurrency Model
//
// The store uses sync.Map: the key space is small and stable while entries
// for different identifiers are read and written concurrently by independent
// instrument/unstrument calls. LoadOrStore gives capture-if-absent the
// atomic read-modify-write the contract requires. Operations on the same
// identifier performed concurrently are not ordered by the store; callers
// serialize those themselves.
//
// The store is constructed, not ambient process state, so tests reset it by
// creating a fresh instance.
package origstore

import (
	"sync"

	"github.com/vk/fnguard/internal/binding"
	"github.com/vk/fnguard/internal/funcid"
)

// Store maps function identifiers to their pre-instrumentation
// implementations.
type Store struct {
	originals sync.Map // Key: funcid.ID, Value: binding.Impl
}

// New creates a new, empty store.
func New() *Store {
	return &Store{}
}

// CaptureIfAbsent records impl as the original for id unless an original is
// already held. It reports whether the entry was stored by this call.
func (s *Store) CaptureIfAbsent(id funcid.ID, impl binding.Impl) bool {
	_, loaded := s.originals.LoadOrStore(id, impl)
	return !loaded
}

// GetOr returns the stored original for id, or fallback when none is held.
func (s *Store) GetOr(id funcid.ID, fallback binding.Impl) binding.Impl {
	v, ok := s.originals.Load(id)
	if !ok {
		return fallback
	}
	return v.(binding.Impl)
}

// Clear removes the entry for id, if any.
func (s *Store) Clear(id funcid.ID) {
	s.originals.Delete(id)
}

// Contains reports whether an original is held for id. This is the
// debug-inspectable signal that id is currently instrumented.
func (s *Store) Contains(id funcid.ID) bool {
	_, ok := s.originals.Load(id)
	return ok
}

// Len returns the number of held originals.
func (s *Store) Len() int {
	n := 0
	s.originals.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
