package system

import (
	"time"

	"github.com/amphoreus/sim/internal/core/event"
	coresys "github.com/amphoreus/sim/internal/core/system"
)

// DispatchSystem delivers the previous tick's events at the start of each
// tick. Phase 0 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.Flush()
}

// Flush swaps and dispatches once. Also used at shutdown to deliver the
// final tick's events.
func (s *DispatchSystem) Flush() {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
