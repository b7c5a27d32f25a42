package world

import (
	"github.com/amphoreus/sim/internal/component"
	"github.com/amphoreus/sim/internal/core/ecs"
)

// PathCensus summarizes the entities following one alignment.
type PathCensus struct {
	Count          int
	MeanPower      float64
	MeanCorruption float64
}

// Census groups every entity carrying both Coreflame and GoldenBlood by
// alignment.
type Census map[component.Path]PathCensus

// TakeCensus walks the Coreflame/GoldenBlood intersection once.
func (w *World) TakeCensus() Census {
	type acc struct {
		n            int
		power, blood float64
	}
	var sums [len(component.Paths)]acc
	ecs.Each2(w.Coreflames, w.GoldenBlood, func(_ ecs.Entity, cf *component.Coreflame, gb *component.GoldenBlood) {
		if int(cf.Alignment) >= len(sums) {
			return
		}
		a := &sums[cf.Alignment]
		a.n++
		a.power += cf.PowerLevel
		a.blood += gb.CorruptionLevel
	})

	out := make(Census, len(sums))
	for _, p := range component.Paths {
		a := sums[p]
		if a.n == 0 {
			continue
		}
		out[p] = PathCensus{
			Count:          a.n,
			MeanPower:      a.power / float64(a.n),
			MeanCorruption: a.blood / float64(a.n),
		}
	}
	return out
}
