package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/amphoreus/sim/internal/config"
)

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewDB(ctx context.Context, cfg config.LedgerConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	log.Info("tide ledger connected", zap.String("driver", DriverPostgres))
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// PGLedger is the PostgreSQL tide ledger.
type PGLedger struct {
	db *DB
}

func NewPGLedger(db *DB) *PGLedger {
	return &PGLedger{db: db}
}

func (l *PGLedger) Record(ctx context.Context, rec TideRecord) error {
	tx, err := l.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("tide begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO black_tides (cycle, entropy, arena_offset, population, retained_cycles, trauma, bypassed_ticks, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		int64(rec.Cycle), rec.Entropy, int64(rec.ArenaOffset), int64(rec.Population),
		int64(rec.RetainedCycles), rec.Trauma, int64(rec.BypassedTicks), rec.At,
	); err != nil {
		return fmt.Errorf("tide insert: %w", err)
	}
	return tx.Commit(ctx)
}

func (l *PGLedger) Recent(ctx context.Context, limit int) ([]TideRecord, error) {
	rows, err := l.db.Pool.Query(ctx,
		`SELECT cycle, entropy, arena_offset, population, retained_cycles, trauma, bypassed_ticks, recorded_at
		 FROM black_tides ORDER BY id DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query tides: %w", err)
	}
	defer rows.Close()

	var out []TideRecord
	for rows.Next() {
		var rec TideRecord
		var cycle, offset, pop, retained, bypassed int64
		if err := rows.Scan(&cycle, &rec.Entropy, &offset, &pop, &retained, &rec.Trauma, &bypassed, &rec.At); err != nil {
			return nil, fmt.Errorf("scan tide: %w", err)
		}
		rec.Cycle = uint64(cycle)
		rec.ArenaOffset = int(offset)
		rec.Population = int(pop)
		rec.RetainedCycles = uint64(retained)
		rec.BypassedTicks = uint64(bypassed)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (l *PGLedger) Close() error {
	l.db.Close()
	return nil
}
