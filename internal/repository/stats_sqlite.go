package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const incrementCounterQuery = `INSERT INTO counters (name, value) VALUES (?, '1')
ON CONFLICT(name) DO UPDATE SET value = CAST(CAST(value AS INTEGER) + 1 AS TEXT)`

type sqliteStats struct {
	db *sql.DB
}

// NewSQLiteStatsRepository - expects the counters table created by storage.SQLiteStorage.Init.
func NewSQLiteStatsRepository(db *sql.DB) StatsRepository {
	return &sqliteStats{
		db: db,
	}
}

func (that *sqliteStats) Increment(ctx context.Context, names ...string) error {
	if err := validateCounters(names); err != nil {
		return err
	}

	tx, err := that.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, name := range names {
		if _, err = tx.ExecContext(ctx, incrementCounterQuery, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to increment counter %s: %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit counters: %w", err)
	}

	return nil
}

func (that *sqliteStats) Get(ctx context.Context) (*entity.Stats, error) {
	rows, err := that.db.QueryContext(ctx, `SELECT name, value FROM counters`)
	if err != nil {
		return nil, fmt.Errorf("failed to get counters: %w", err)
	}
	defer rows.Close()

	stats := &entity.Stats{}
	for rows.Next() {
		var name, raw string
		if err = rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}

		counter, err := parseCounter(name, raw)
		if err != nil {
			return nil, err
		}
		stats.Set(name, counter)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	return stats, nil
}
