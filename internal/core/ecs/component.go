package ecs

import "iter"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(e Entity) bool
	Clear()
}

// Store is a sparse-set component store. Values live densely packed in
// insertion order; sparse maps an entity ID to dense index + 1 so that the
// zero value means absent.
type Store[T any] struct {
	entities []Entity
	data     []T
	sparse   []uint32
}

func NewStore[T any](entityCap, componentCap int) *Store[T] {
	return &Store[T]{
		entities: make([]Entity, 0, componentCap),
		data:     make([]T, 0, componentCap),
		sparse:   make([]uint32, entityCap),
	}
}

func (s *Store[T]) slot(e Entity) uint32 {
	if int(e) >= len(s.sparse) {
		return 0
	}
	return s.sparse[e]
}

// Insert attaches v to e, overwriting in place when e is already present.
func (s *Store[T]) Insert(e Entity, v T) {
	if int(e) >= len(s.sparse) {
		s.sparse = append(s.sparse, make([]uint32, int(e)+1-len(s.sparse))...)
	}
	if slot := s.sparse[e]; slot != 0 {
		s.data[slot-1] = v
		return
	}
	s.entities = append(s.entities, e)
	s.data = append(s.data, v)
	s.sparse[e] = uint32(len(s.data))
}

func (s *Store[T]) Get(e Entity) (T, bool) {
	slot := s.slot(e)
	if slot == 0 {
		var zero T
		return zero, false
	}
	return s.data[slot-1], true
}

// Ptr returns a pointer into dense storage for in-place mutation, or nil.
// The pointer is invalidated by any Insert or Remove.
func (s *Store[T]) Ptr(e Entity) *T {
	slot := s.slot(e)
	if slot == 0 {
		return nil
	}
	return &s.data[slot-1]
}

func (s *Store[T]) Has(e Entity) bool {
	return s.slot(e) != 0
}

// Remove swap-removes e: the last dense element moves into its slot.
func (s *Store[T]) Remove(e Entity) bool {
	_, ok := s.Take(e)
	return ok
}

// Take removes e and returns its value.
func (s *Store[T]) Take(e Entity) (T, bool) {
	slot := s.slot(e)
	if slot == 0 {
		var zero T
		return zero, false
	}

	idx := slot - 1
	last := uint32(len(s.data) - 1)
	removed := s.data[idx]
	if idx != last {
		moved := s.entities[last]
		s.entities[idx] = moved
		s.data[idx] = s.data[last]
		s.sparse[moved] = idx + 1
	}

	var zero T
	s.data[last] = zero
	s.entities = s.entities[:last]
	s.data = s.data[:last]
	s.sparse[e] = 0
	return removed, true
}

// Clear empties the store and resets every sparse slot to absent.
func (s *Store[T]) Clear() {
	clear(s.data)
	s.entities = s.entities[:0]
	s.data = s.data[:0]
	clear(s.sparse)
}

func (s *Store[T]) Len() int { return len(s.data) }

// All yields every present (entity, value) pair once, in dense order.
func (s *Store[T]) All() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for i, e := range s.entities {
			if !yield(e, s.data[i]) {
				return
			}
		}
	}
}

// Entities returns the dense entity slice. Callers must not modify it.
func (s *Store[T]) Entities() []Entity { return s.entities }

// Values returns the dense value slice, parallel to Entities. Elements may be
// mutated in place; the slice itself must not be resliced or appended to.
func (s *Store[T]) Values() []T { return s.data }
