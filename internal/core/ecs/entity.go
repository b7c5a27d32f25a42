package ecs

import "math"

// Entity is an opaque 32-bit identifier. IDs are issued by a monotonic counter
// and are never reused until the pool is reset.
type Entity uint32

// Handle is a weak reference to an entity. A valid handle may still point at a
// despawned entity; callers check liveness against the pool before use.
type Handle struct {
	ID    Entity
	Valid bool
}

// Ref wraps an entity into a valid handle.
func Ref(e Entity) Handle { return Handle{ID: e, Valid: true} }

// Get returns the referenced entity and whether the handle is set.
func (h Handle) Get() (Entity, bool) { return h.ID, h.Valid }

// EntityPool issues sequential IDs and tracks liveness in a bitmap.
type EntityPool struct {
	alive Bitmap
	next  uint64
	count int
}

func NewEntityPool(capacity int) *EntityPool {
	return &EntityPool{alive: NewBitmap(capacity)}
}

// Create allocates the next ID. Exhausting the 32-bit ID space is a
// precondition violation and panics.
func (p *EntityPool) Create() Entity {
	if p.next > math.MaxUint32 {
		panic("ecs: entity id space exhausted")
	}
	e := Entity(p.next)
	p.next++
	p.alive.Set(uint32(e))
	p.count++
	return e
}

func (p *EntityPool) Alive(e Entity) bool {
	return p.alive.Test(uint32(e))
}

// Destroy marks e dead. Returns false if it was not alive.
func (p *EntityPool) Destroy(e Entity) bool {
	if !p.alive.Test(uint32(e)) {
		return false
	}
	p.alive.Unset(uint32(e))
	p.count--
	return true
}

// Reset kills every entity and restarts the counter at zero.
func (p *EntityPool) Reset() {
	p.alive.Clear()
	p.next = 0
	p.count = 0
}

func (p *EntityPool) Count() int { return p.count }

// Span is the number of IDs the liveness bitmap currently covers.
func (p *EntityPool) Span() int { return p.alive.Len() }
