package world

import (
	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/core/ecs"
)

// World owns the three component stores, the liveness bitmap and the ID
// counter. It is not synchronized; reach it through Shared.
type World struct {
	ecs *ecs.World

	Coreflames  *ecs.Store[component.Coreflame]
	MemoryLogs  *ecs.Store[component.MemoryLog]
	GoldenBlood *ecs.Store[component.GoldenBlood]
}

// New builds a World sized for entityCapacity IDs. Component stores start
// with smaller dense capacities since not every entity carries every component.
func New(entityCapacity int) *World {
	if entityCapacity < 0 {
		entityCapacity = 0
	}
	w := &World{
		ecs:         ecs.NewWorld(entityCapacity),
		Coreflames:  ecs.NewStore[component.Coreflame](entityCapacity, entityCapacity/4),
		MemoryLogs:  ecs.NewStore[component.MemoryLog](entityCapacity, entityCapacity/8),
		GoldenBlood: ecs.NewStore[component.GoldenBlood](entityCapacity, entityCapacity/4),
	}
	reg := w.ecs.Registry()
	reg.Register(w.Coreflames)
	reg.Register(w.MemoryLogs)
	reg.Register(w.GoldenBlood)
	return w
}

// Spawn allocates the next entity ID and marks it alive.
// Panics if the 32-bit ID space is exhausted.
func (w *World) Spawn() ecs.Entity {
	return w.ecs.CreateEntity()
}

// Despawn kills e and removes it from every store. Returns whether e was alive.
func (w *World) Despawn(e ecs.Entity) bool {
	return w.ecs.DestroyEntity(e)
}

func (w *World) Alive(e ecs.Entity) bool { return w.ecs.Alive(e) }

func (w *World) EntityCount() int { return w.ecs.Pool().Count() }

// Span is the number of entity IDs the liveness bitmap covers; IDs below it
// can index per-entity lookup tables.
func (w *World) Span() int { return w.ecs.Pool().Span() }

// AverageCorruption is the mean corruption over entities holding GoldenBlood,
// or 0 when there are none.
func (w *World) AverageCorruption() float64 {
	blood := w.GoldenBlood.Values()
	if len(blood) == 0 {
		return 0
	}
	var total float64
	for _, b := range blood {
		total += b.CorruptionLevel
	}
	return total / float64(len(blood))
}

// ResetForBlackTide destroys every entity, clears all stores and restarts
// ID allocation at zero.
func (w *World) ResetForBlackTide() {
	w.ecs.Reset()
}
