package world

import "sync"

// Shared is the single guarded World instance passed to everything that
// touches simulation state. It must be initialized once with Init; before
// that every access reports "not ready" instead of failing.
type Shared struct {
	once  sync.Once
	mu    sync.RWMutex
	world *World
}

// NewShared returns an uninitialized handle.
func NewShared() *Shared {
	return &Shared{}
}

// NewSharedWithCapacity returns a handle that is already initialized.
func NewSharedWithCapacity(entityCapacity int) *Shared {
	s := NewShared()
	s.Init(entityCapacity)
	return s
}

// Init creates the World. Only the first call has any effect.
func (s *Shared) Init(entityCapacity int) {
	s.once.Do(func() {
		w := New(entityCapacity)
		s.mu.Lock()
		s.world = w
		s.mu.Unlock()
	})
}

func (s *Shared) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world != nil
}

// Read runs fn under the shared lock. Returns false without calling fn if
// the World has not been initialized.
func (s *Shared) Read(fn func(w *World)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.world == nil {
		return false
	}
	fn(s.world)
	return true
}

// Write runs fn under the exclusive lock. Returns false without calling fn
// if the World has not been initialized.
func (s *Shared) Write(fn func(w *World)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return false
	}
	fn(s.world)
	return true
}

// ReadValue is Read for callbacks that produce a value.
func ReadValue[R any](s *Shared, fn func(w *World) R) (R, bool) {
	var out R
	ok := s.Read(func(w *World) { out = fn(w) })
	return out, ok
}

// WriteValue is Write for callbacks that produce a value.
func WriteValue[R any](s *Shared, fn func(w *World) R) (R, bool) {
	var out R
	ok := s.Write(func(w *World) { out = fn(w) })
	return out, ok
}
