package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/core/event"
	"github.com/amphoreus/sim/internal/entropy"
	"github.com/amphoreus/sim/internal/page"
	"github.com/amphoreus/sim/internal/world"
)

const (
	timeBypassTrauma = 0.85
	timeBypassPower  = 1.0

	corruptionEntropyWeight = 0.35 // multiplier term per unit of average corruption
	traumaEntropyWeight     = 0.25 // multiplier term per unit of Phainon's trauma
	traumaPerEntropy        = 0.02 // trauma Phainon accrues per unit of entropy each tick
)

// Tick advances the simulation by one fixed step.
func (e *Engine) Tick() Result {
	bypassed := e.refreshTimeConcept()

	e.state.DestructionEntropy = entropy.Evaluate(e.entropyNodes())
	e.advanceMemory()
	e.propagateCorruption()

	if e.state.DestructionEntropy >= 1 {
		e.blackTide()
		return BlackTideTriggered
	}
	if bypassed {
		event.Emit(e.bus, event.TimeBypassed{
			Cycle:   e.state.CycleCount,
			Entropy: e.state.DestructionEntropy,
		})
		return TimeBypassed
	}
	e.state.CycleCount = saturatingInc(e.state.CycleCount)
	return TickAdvanced
}

// TimeBypassActive reports whether Cyrene currently suspends the flow of
// time: she must be alive, follow Remembrance, and carry enough trauma and
// power.
func (e *Engine) TimeBypassActive() bool {
	cyrene, ok := e.flame.Cyrene.Get()
	if !ok {
		return false
	}
	active, _ := world.ReadValue(e.world, func(w *world.World) bool {
		if !w.Alive(cyrene) {
			return false
		}
		cf, ok := w.Coreflames.Get(cyrene)
		if !ok {
			return false
		}
		mem, ok := w.MemoryLogs.Get(cyrene)
		if !ok {
			return false
		}
		return cf.Alignment == component.PathRemembrance &&
			mem.TraumaIndex >= timeBypassTrauma &&
			cf.PowerLevel >= timeBypassPower
	})
	return active
}

func (e *Engine) refreshTimeConcept() bool {
	bypassed := e.TimeBypassActive()
	e.state.TimeConceptActive = !bypassed
	return bypassed
}

func (e *Engine) entropyNodes() []entropy.Node {
	var (
		count      int
		corruption float64
	)
	e.world.Read(func(w *world.World) {
		count = w.EntityCount()
		corruption = w.AverageCorruption()
	})
	trauma := 1 + e.memory.TraumaIndex*traumaEntropyWeight
	return []entropy.Node{
		entropy.EntityCount{N: uint32(min(count, math.MaxUint32))},
		entropy.ConflictEvent{Severity: corruption},
		entropy.Multiplier{Scale: (1 + corruption*corruptionEntropyWeight) * trauma},
	}
}

// advanceMemory ages Phainon's persistent memory by one cycle and mirrors it
// onto the live entity.
func (e *Engine) advanceMemory() {
	e.memory.RetainedCycles = saturatingInc(e.memory.RetainedCycles)
	e.memory.TraumaIndex = component.Clamp01(e.memory.TraumaIndex + e.state.DestructionEntropy*traumaPerEntropy)

	phainon, ok := e.flame.Phainon.Get()
	if !ok {
		return
	}
	memory := e.memory
	e.world.Write(func(w *world.World) {
		if !w.Alive(phainon) {
			return
		}
		if log := w.MemoryLogs.Ptr(phainon); log != nil {
			*log = memory
		}
	})
}

// captureMemory pulls Phainon's live memory back into the engine before the
// world is wiped.
func (e *Engine) captureMemory() {
	phainon, ok := e.flame.Phainon.Get()
	if !ok {
		return
	}
	e.world.Read(func(w *world.World) {
		if !w.Alive(phainon) {
			return
		}
		if log, ok := w.MemoryLogs.Get(phainon); ok {
			e.memory = log
		}
	})
}

// blackTide wipes and reseeds the world after entropy saturates.
func (e *Engine) blackTide() {
	e.captureMemory()

	offset := e.arena.Offset()
	population, _ := world.ReadValue(e.world, func(w *world.World) int { return w.EntityCount() })
	e.writePage()

	e.arena.Reset()
	e.state.CycleCount = saturatingInc(e.state.CycleCount)
	e.world.Write(func(w *world.World) {
		w.ResetForBlackTide()
		e.populate(w)
	})
	e.refreshTimeConcept()

	e.log.Info("black tide",
		zap.Uint64("cycle", e.state.CycleCount),
		zap.Float64("entropy", e.state.DestructionEntropy),
		zap.Int("population", population),
		zap.Int("arena_offset", offset),
		zap.Uint64("retained_cycles", e.memory.RetainedCycles),
		zap.Float64("trauma", e.memory.TraumaIndex))

	event.Emit(e.bus, event.BlackTide{
		Cycle:          e.state.CycleCount,
		Entropy:        e.state.DestructionEntropy,
		ArenaOffset:    offset,
		Population:     population,
		RetainedCycles: e.memory.RetainedCycles,
		Trauma:         e.memory.TraumaIndex,
		At:             time.Now(),
	})
}

// writePage dumps the arena's used bytes. Failures are logged; the tide
// proceeds regardless.
func (e *Engine) writePage() {
	snap := page.Snapshot{
		Offset: uint64(e.arena.Offset()),
		Memory: e.arena.Used(),
	}
	if err := page.WriteFile(e.pagePath, snap); err != nil {
		e.log.Error("eternal page write failed", zap.String("path", e.pagePath), zap.Error(err))
	}
}

func saturatingInc(v uint64) uint64 {
	if v == math.MaxUint64 {
		return v
	}
	return v + 1
}
