package ecs

// World is the generic ECS container. It owns the entity pool and the
// component registry; typed stores are registered by the domain layer.
type World struct {
	pool     *EntityPool
	registry *Registry
}

func NewWorld(entityCapacity int) *World {
	return &World{
		pool:     NewEntityPool(entityCapacity),
		registry: NewRegistry(),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() Entity {
	return w.pool.Create()
}

func (w *World) Alive(e Entity) bool {
	return w.pool.Alive(e)
}

// DestroyEntity kills e and strips it from every registered store.
// Destroying a dead or unknown entity is a no-op that returns false.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.pool.Destroy(e) {
		return false
	}
	w.registry.RemoveAll(e)
	return true
}

// Reset destroys every entity at once and restarts ID allocation at zero.
func (w *World) Reset() {
	w.pool.Reset()
	w.registry.ClearAll()
}
