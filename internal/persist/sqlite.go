package persist

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure Go driver, registers "sqlite"
)

// SQLiteLedger is the embedded tide ledger, one file per deployment.
type SQLiteLedger struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens or creates the ledger at path, creating parent
// directories as needed, and applies migrations.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteLedger, error) {
	if path == "" {
		return nil, fmt.Errorf("open sqlite ledger: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	// One writer at a time; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite ledger: %w", err)
	}
	if err := runSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("tide ledger opened", zap.String("driver", DriverSQLite), zap.String("path", path))
	return &SQLiteLedger{db: db, log: log}, nil
}

func (l *SQLiteLedger) Record(ctx context.Context, rec TideRecord) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("tide begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO black_tides (cycle, entropy, arena_offset, population, retained_cycles, trauma, bypassed_ticks, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(rec.Cycle), rec.Entropy, int64(rec.ArenaOffset), int64(rec.Population),
		int64(rec.RetainedCycles), rec.Trauma, int64(rec.BypassedTicks), rec.At.UnixNano(),
	); err != nil {
		return fmt.Errorf("tide insert: %w", err)
	}
	return tx.Commit()
}

func (l *SQLiteLedger) Recent(ctx context.Context, limit int) ([]TideRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT cycle, entropy, arena_offset, population, retained_cycles, trauma, bypassed_ticks, recorded_at
		 FROM black_tides ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query tides: %w", err)
	}
	defer rows.Close()

	var out []TideRecord
	for rows.Next() {
		var rec TideRecord
		var cycle, offset, pop, retained, bypassed, at int64
		if err := rows.Scan(&cycle, &rec.Entropy, &offset, &pop, &retained, &rec.Trauma, &bypassed, &at); err != nil {
			return nil, fmt.Errorf("scan tide: %w", err)
		}
		rec.Cycle = uint64(cycle)
		rec.ArenaOffset = int(offset)
		rec.Population = int(pop)
		rec.RetainedCycles = uint64(retained)
		rec.BypassedTicks = uint64(bypassed)
		rec.At = time.Unix(0, at).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
