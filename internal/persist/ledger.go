// Package persist stores the black tide history. The ledger is write-mostly
// history for inspection; simulations never resume from it.
package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/config"
)

// ErrUnknownDriver is returned by Open for an unsupported ledger driver.
var ErrUnknownDriver = errors.New("persist: unknown ledger driver")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// TideRecord is one black tide as written to the ledger.
type TideRecord struct {
	Cycle          uint64
	Entropy        float64
	ArenaOffset    int
	Population     int
	RetainedCycles uint64
	Trauma         float64
	BypassedTicks  uint64 // ticks Cyrene held time still since the previous tide
	At             time.Time
}

// TideLedger records black tides and lists the most recent ones.
type TideLedger interface {
	Record(ctx context.Context, rec TideRecord) error
	Recent(ctx context.Context, limit int) ([]TideRecord, error)
	Close() error
}

// Open connects to the ledger selected by cfg.Driver and applies migrations.
func Open(ctx context.Context, cfg config.LedgerConfig, log *zap.Logger) (TideLedger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Driver {
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.DSN, log)
	case DriverPostgres:
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		return NewPGLedger(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
