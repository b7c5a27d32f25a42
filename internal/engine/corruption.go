package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/core/ecs"
	"github.com/amphoreus/sim/internal/world"
)

const (
	corruptionThreshold     = 0.6
	corruptionPerEntropy    = 0.05
	powerDecayPerCorruption = 0.03

	// Smallest slice of a dense array handed to one worker.
	minChunk = 1024
)

type chunk struct{ lo, hi int }

// partition splits n items into at most workers contiguous chunks of at
// least minChunk items each.
func partition(n, workers int) []chunk {
	if n <= 0 {
		return nil
	}
	workers = max(workers, 1)
	size := max((n+workers-1)/workers, minChunk)
	chunks := make([]chunk, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		chunks = append(chunks, chunk{lo: lo, hi: min(lo+size, n)})
	}
	return chunks
}

// parallel runs fn once per chunk, on up to e.workers goroutines.
func (e *Engine) parallel(chunks []chunk, fn func(i int, c chunk)) {
	if len(chunks) <= 1 || e.workers <= 1 {
		for i, c := range chunks {
			fn(i, c)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, c := range chunks {
		g.Go(func() error {
			fn(i, c)
			return nil
		})
	}
	_ = g.Wait()
}

type raised struct {
	entity ecs.Entity
	level  float64
}

// propagateCorruption deepens golden-blood corruption above the threshold and
// turns the affected entities toward Destruction.
//
// Phase one mutates disjoint GoldenBlood chunks and collects what changed per
// chunk. Phase two merges those into a lookup indexed by entity ID. Phase
// three mutates disjoint Coreflame chunks, reading the finished lookup only.
func (e *Engine) propagateCorruption() {
	growth := e.state.DestructionEntropy * corruptionPerEntropy

	e.world.Write(func(w *world.World) {
		entities := w.GoldenBlood.Entities()
		blood := w.GoldenBlood.Values()

		chunks := partition(len(blood), e.workers)
		changed := make([][]raised, len(chunks))
		e.parallel(chunks, func(i int, c chunk) {
			var local []raised
			for j := c.lo; j < c.hi; j++ {
				b := &blood[j]
				if b.CorruptionLevel < corruptionThreshold {
					continue
				}
				b.CorruptionLevel = component.Clamp01(b.CorruptionLevel + growth)
				local = append(local, raised{entity: entities[j], level: b.CorruptionLevel})
			}
			changed[i] = local
		})

		// Raised levels are never below the threshold, so zero marks
		// untouched entities.
		lookup := e.lookupTable(w.Span())
		touched := false
		for _, local := range changed {
			for _, r := range local {
				// Blood may be attached to an ID the pool never issued.
				if int(r.entity) >= len(lookup) {
					continue
				}
				lookup[r.entity] = r.level
				touched = true
			}
		}
		if !touched {
			return
		}

		flameEntities := w.Coreflames.Entities()
		flames := w.Coreflames.Values()
		e.parallel(partition(len(flames), e.workers), func(_ int, c chunk) {
			for j := c.lo; j < c.hi; j++ {
				id := int(flameEntities[j])
				if id >= len(lookup) || lookup[id] == 0 {
					continue
				}
				f := &flames[j]
				f.PowerLevel = max(0, f.PowerLevel*(1-lookup[id]*powerDecayPerCorruption))
				f.Alignment = component.PathDestruction
			}
		})
	})
}

// lookupTable returns a zeroed scratch table covering span entity IDs,
// reusing the previous tick's allocation when it is large enough.
func (e *Engine) lookupTable(span int) []float64 {
	if cap(e.lookup) < span {
		e.lookup = make([]float64, span)
		return e.lookup
	}
	e.lookup = e.lookup[:span]
	clear(e.lookup)
	return e.lookup
}
