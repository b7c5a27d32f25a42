package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/config"
)

func sampleRecords() []TideRecord {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []TideRecord{
		{Cycle: 1, Entropy: 1, ArenaOffset: 92, Population: 300_002, RetainedCycles: 7, Trauma: 0.4, BypassedTicks: 6, At: at},
		{Cycle: 2, Entropy: 1, ArenaOffset: 560_444, Population: 12_386, RetainedCycles: 19, Trauma: 0.9, At: at.Add(time.Minute)},
		{Cycle: 3, Entropy: 1, ArenaOffset: 0, Population: 2, RetainedCycles: 20, Trauma: 1, BypassedTicks: 1 << 40, At: at.Add(2 * time.Minute)},
	}
}

// exerciseLedger records the sample tides and checks Recent returns them
// newest first.
func exerciseLedger(t *testing.T, l TideLedger) {
	t.Helper()
	ctx := context.Background()

	recs := sampleRecords()
	for _, rec := range recs {
		if err := l.Record(ctx, rec); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	got, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d records", len(got))
	}
	for i, want := range []TideRecord{recs[2], recs[1]} {
		g := got[i]
		if !g.At.Equal(want.At) {
			t.Errorf("record %d time = %v, want %v", i, g.At, want.At)
		}
		g.At, want.At = time.Time{}, time.Time{}
		if g != want {
			t.Errorf("record %d = %+v, want %+v", i, g, want)
		}
	}

	all, err := l.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(all) != len(recs) {
		t.Fatalf("Recent(100) returned %d records, want %d", len(all), len(recs))
	}
}

func TestSQLiteLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tides.db")
	l, err := OpenSQLite(context.Background(), path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("ledger file not created: %v", err)
	}
	exerciseLedger(t, l)
}

func TestSQLiteLedgerReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tides.db")

	l, err := OpenSQLite(ctx, path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	if err := l.Record(ctx, sampleRecords()[0]); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// Migrations are idempotent and history survives.
	l, err = OpenSQLite(ctx, path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer l.Close()
	got, err := l.Recent(ctx, 10)
	if err != nil || len(got) != 1 || got[0].Cycle != 1 {
		t.Fatalf("Recent() = %+v, %v", got, err)
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	l, err := Open(ctx, config.LedgerConfig{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "t.db")}, nil)
	if err != nil {
		t.Fatalf("Open(sqlite) failed: %v", err)
	}
	if _, ok := l.(*SQLiteLedger); !ok {
		t.Fatalf("Open(sqlite) returned %T", l)
	}
	l.Close()

	if _, err := Open(ctx, config.LedgerConfig{Driver: "mongodb"}, nil); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("Open(mongodb) err = %v, want ErrUnknownDriver", err)
	}
	if _, err := Open(ctx, config.LedgerConfig{Driver: DriverSQLite}, nil); err == nil {
		t.Fatal("Open(sqlite) with empty path should fail")
	}
}

func TestPostgresLedger(t *testing.T) {
	dsn := os.Getenv("AMPHOREUS_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("AMPHOREUS_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	l, err := Open(ctx, config.LedgerConfig{Driver: DriverPostgres, DSN: dsn, MaxOpenConns: 4}, zap.NewNop())
	if err != nil {
		t.Fatalf("Open(postgres) failed: %v", err)
	}
	defer l.Close()

	pg := l.(*PGLedger)
	if _, err := pg.db.Pool.Exec(ctx, `TRUNCATE black_tides`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	exerciseLedger(t, l)
}
