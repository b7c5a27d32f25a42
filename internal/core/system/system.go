package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseDispatch Phase = iota // 0: deliver last tick's events
	PhaseSimulate              // 1: advance the engine
	PhaseSample                // 2: record observables
	PhasePersist               // 3: flush ledgers
)

// System is the interface every per-tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
