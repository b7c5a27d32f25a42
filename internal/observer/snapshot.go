package observer

import (
	"slices"
	"sync"

	"github.com/amphoreus/sim/internal/engine"
)

// Snapshot is what observers see of the simulation after a scheduling
// iteration.
type Snapshot struct {
	State          engine.GlobalState
	EntropySamples []float64 // oldest first
	Ticks          uint64
	BlackTides     uint64
}

// SharedSnapshot holds the latest published Snapshot. Read hands out
// independent copies so callers can never alias runtime state.
type SharedSnapshot struct {
	mu   sync.RWMutex
	snap Snapshot
}

func (s *SharedSnapshot) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.snap
	out.EntropySamples = slices.Clone(s.snap.EntropySamples)
	return out
}

func (s *SharedSnapshot) publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// ring keeps the newest len(buf) samples.
type ring struct {
	buf  []float64
	head int
	n    int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]float64, capacity)}
}

func (r *ring) push(v float64) {
	if r.n < len(r.buf) {
		r.buf[(r.head+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

func (r *ring) len() int { return r.n }

// appendTo appends the samples, oldest first.
func (r *ring) appendTo(dst []float64) []float64 {
	for i := 0; i < r.n; i++ {
		dst = append(dst, r.buf[(r.head+i)%len(r.buf)])
	}
	return dst
}
