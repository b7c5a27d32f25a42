package engine

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/core/ecs"
	"github.com/amphoreus/sim/internal/world"
)

// Arena charge per spawn: the entity ID plus each requested component,
// aligned to 8 bytes. The charge only bounds world mass; component data
// lives in the World's stores.
var (
	entityBytes      = int(unsafe.Sizeof(ecs.Entity(0)))
	coreflameBytes   = int(unsafe.Sizeof(component.Coreflame{}))
	memoryLogBytes   = int(unsafe.Sizeof(component.MemoryLog{}))
	goldenBloodBytes = int(unsafe.Sizeof(component.GoldenBlood{}))
)

const spawnAlign = 8

// Flame-chase seed attributes.
var (
	phainonFlame = component.Coreflame{PowerLevel: 1.65, Alignment: component.PathRemembrance}
	phainonBlood = component.GoldenBlood{CorruptionLevel: 0.52}
	cyreneFlame  = component.Coreflame{PowerLevel: 1.35, Alignment: component.PathRemembrance}
	cyreneMemory = component.MemoryLog{TraumaIndex: 0.92}
	cyreneBlood  = component.GoldenBlood{CorruptionLevel: 0.33}
)

func spawnCost(req Spawn) int {
	n := entityBytes
	if req.Coreflame != nil {
		n += coreflameBytes
	}
	if req.MemoryLog != nil {
		n += memoryLogBytes
	}
	if req.GoldenBlood != nil {
		n += goldenBloodBytes
	}
	return n
}

// SpawnEntity charges the arena for req and, if that succeeds, creates an
// entity carrying the requested components. On arena failure nothing is
// created.
func (e *Engine) SpawnEntity(req Spawn) (ecs.Entity, error) {
	var (
		ent ecs.Entity
		err error
	)
	if !e.world.Write(func(w *world.World) { ent, err = e.spawnInto(w, req) }) {
		return 0, ErrWorldNotReady
	}
	return ent, err
}

func (e *Engine) spawnInto(w *world.World, req Spawn) (ecs.Entity, error) {
	if _, err := e.arena.Alloc(spawnCost(req), spawnAlign); err != nil {
		return 0, fmt.Errorf("spawn entity: %w", err)
	}
	ent := w.Spawn()
	if req.Coreflame != nil {
		w.Coreflames.Insert(ent, *req.Coreflame)
	}
	if req.MemoryLog != nil {
		w.MemoryLogs.Insert(ent, *req.MemoryLog)
	}
	if req.GoldenBlood != nil {
		w.GoldenBlood.Insert(ent, *req.GoldenBlood)
	}
	return ent, nil
}

// SeedWorld stores seed, wipes the arena and the World, spawns the
// population tiers and the flame-chase entities, and re-evaluates the time
// bypass.
func (e *Engine) SeedWorld(seed Seed) {
	e.seed = seed
	e.arena.Reset()
	e.world.Write(func(w *world.World) {
		w.ResetForBlackTide()
		e.populate(w)
	})
	e.refreshTimeConcept()
}

// populate spawns every tier and the tracked pair into a freshly reset world.
// Spawns that exceed the arena are skipped.
func (e *Engine) populate(w *world.World) {
	e.flame = FlameChase{}
	dropped := 0
	try := func(req Spawn) (ecs.Entity, bool) {
		ent, err := e.spawnInto(w, req)
		if err != nil {
			dropped++
			return 0, false
		}
		return ent, true
	}

	for i := uint32(0); i < e.seed.Citizens; i++ {
		try(citizen(i))
	}
	for i := uint32(0); i < e.seed.Titans; i++ {
		try(titan(i))
	}
	for i := uint32(0); i < e.seed.ChrysosHeirs; i++ {
		try(chrysosHeir(i))
	}

	memory := e.memory
	if p, ok := try(Spawn{Coreflame: &phainonFlame, MemoryLog: &memory, GoldenBlood: &phainonBlood}); ok {
		e.flame.Phainon = ecs.Ref(p)
	}
	cyMemory := cyreneMemory
	if c, ok := try(Spawn{Coreflame: &cyreneFlame, MemoryLog: &cyMemory, GoldenBlood: &cyreneBlood}); ok {
		e.flame.Cyrene = ecs.Ref(c)
	}

	if dropped > 0 {
		e.log.Warn("arena exhausted while seeding",
			zap.Int("dropped", dropped),
			zap.Int("arena_offset", e.arena.Offset()),
			zap.Int("arena_capacity", e.arena.Cap()))
	}
}

func citizen(i uint32) Spawn {
	return Spawn{
		Coreflame: &component.Coreflame{
			PowerLevel: component.Clamp(0.28+float64(i%97)*0.004, 0, 1),
			Alignment:  component.PathErudition,
		},
		MemoryLog:   &component.MemoryLog{TraumaIndex: 0.05},
		GoldenBlood: &component.GoldenBlood{CorruptionLevel: component.Clamp(float64(i%37)*0.008, 0, 0.45)},
	}
}

func titan(i uint32) Spawn {
	return Spawn{
		Coreflame: &component.Coreflame{
			PowerLevel: component.Clamp(1.2+float64(i%13)*0.07, 0, 3),
			Alignment:  component.PathDestruction,
		},
		MemoryLog:   &component.MemoryLog{RetainedCycles: 2, TraumaIndex: 0.65},
		GoldenBlood: &component.GoldenBlood{CorruptionLevel: 0.72},
	}
}

func chrysosHeir(i uint32) Spawn {
	return Spawn{
		Coreflame: &component.Coreflame{
			PowerLevel: component.Clamp(0.9+float64(i%11)*0.05, 0, 2),
			Alignment:  component.PathRemembrance,
		},
		MemoryLog: &component.MemoryLog{
			RetainedCycles: 1,
			TraumaIndex:    component.Clamp(0.2+float64(i%7)*0.1, 0, 0.95),
		},
		GoldenBlood: &component.GoldenBlood{CorruptionLevel: 0.48},
	}
}
