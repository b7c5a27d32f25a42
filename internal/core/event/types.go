package event

import "time"

// BlackTide is emitted when destruction entropy saturates, after the world
// has been wiped and reseeded.
type BlackTide struct {
	Cycle          uint64 // cycle count after the tide
	Entropy        float64
	ArenaOffset    int // bytes in use when the tide hit
	Population     int // live entities when the tide hit
	RetainedCycles uint64
	Trauma         float64
	At             time.Time
}

// TimeBypassed is emitted for every tick that did not advance the cycle.
type TimeBypassed struct {
	Cycle   uint64
	Entropy float64
}
