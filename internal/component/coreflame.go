package component

// Coreflame is an entity's power and alignment.
// PowerLevel is unbounded but stays within roughly 0..3 in practice.
type Coreflame struct {
	PowerLevel float64
	Alignment  Path
}

// MemoryLog is what an entity remembers across cycles.
type MemoryLog struct {
	RetainedCycles uint64
	TraumaIndex    float64 // [0,1]
}

// GoldenBlood carries an entity's corruption.
type GoldenBlood struct {
	CorruptionLevel float64 // [0,1]
}

// Clamp bounds v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to the normalized intensity range.
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }
