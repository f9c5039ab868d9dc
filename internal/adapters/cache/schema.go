package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the place-name cache tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlaceCacheQuery := `
	CREATE TABLE IF NOT EXISTS place_cache (
		lat_e2 BIGINT NOT NULL,
		lng_e2 BIGINT NOT NULL,
		label TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (lat_e2, lng_e2)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_place_cache_updated_at
	ON place_cache(updated_at);
	`

	statements := []string{
		createPlaceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
