package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/core/event"
	coresys "github.com/amphoreus/sim/internal/core/system"
	"github.com/amphoreus/sim/internal/persist"
)

const ledgerTimeout = 5 * time.Second

// LedgerSystem writes black tides to the tide ledger. Tides arrive through
// the bus and are flushed in Phase 3 (Persist); a failed write is logged and
// dropped.
type LedgerSystem struct {
	ledger   persist.TideLedger
	log      *zap.Logger
	pending  []persist.TideRecord
	bypassed uint64 // TimeBypassed events since the last tide
	written  int
}

func NewLedgerSystem(bus *event.Bus, ledger persist.TideLedger, log *zap.Logger) *LedgerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LedgerSystem{ledger: ledger, log: log}
	event.Subscribe(bus, s.onTimeBypassed)
	event.Subscribe(bus, s.onBlackTide)
	return s
}

func (s *LedgerSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *LedgerSystem) Update(_ time.Duration) {
	s.Flush()
}

func (s *LedgerSystem) onTimeBypassed(event.TimeBypassed) {
	s.bypassed++
}

func (s *LedgerSystem) onBlackTide(ev event.BlackTide) {
	s.pending = append(s.pending, persist.TideRecord{
		Cycle:          ev.Cycle,
		Entropy:        ev.Entropy,
		ArenaOffset:    ev.ArenaOffset,
		Population:     ev.Population,
		RetainedCycles: ev.RetainedCycles,
		Trauma:         ev.Trauma,
		BypassedTicks:  s.bypassed,
		At:             ev.At,
	})
	s.bypassed = 0
}

// Flush writes every pending record. Called each tick and once more at
// shutdown.
func (s *LedgerSystem) Flush() {
	if len(s.pending) == 0 {
		return
	}
	for _, rec := range s.pending {
		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		err := s.ledger.Record(ctx, rec)
		cancel()
		if err != nil {
			s.log.Error("tide ledger write failed", zap.Uint64("cycle", rec.Cycle), zap.Error(err))
			continue
		}
		s.written++
	}
	s.log.Debug("tide ledger flushed", zap.Int("records", len(s.pending)))
	s.pending = s.pending[:0]
}

// Written is the number of records stored successfully.
func (s *LedgerSystem) Written() int { return s.written }
