package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLPlaceCache is a Postgres-backed cache mapping rounded coordinates to place labels.
// Entries older than MaxAge are ignored on read.
type SQLPlaceCache struct {
	DB     *sql.DB
	MaxAge time.Duration
}

func NewSQLPlaceCache(db *sql.DB, maxAge time.Duration) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db, MaxAge: maxAge}
}

// Fetch cached labels for the given keys.
func (s *SQLPlaceCache) GetMany(
	ctx context.Context,
	keys []domain.PlaceKey,
) (_ map[domain.PlaceKey]string, err error) {
	defer obs.Time(ctx, "place.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("place cache: db is nil")
	}

	if len(keys) == 0 {
		return map[domain.PlaceKey]string{}, nil
	}

	seen := map[domain.PlaceKey]struct{}{}
	lats := make([]int64, 0, len(keys))
	lngs := make([]int64, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		lats = append(lats, k.Lat)
		lngs = append(lngs, k.Lng)
	}

	q := `
	SELECT c.lat_e2, c.lng_e2, c.label
	FROM place_cache c
	JOIN unnest($1::bigint[], $2::bigint[]) AS k(lat_e2, lng_e2)
		ON c.lat_e2 = k.lat_e2 AND c.lng_e2 = k.lng_e2
	WHERE $3::float8 = 0 OR c.updated_at > now() - make_interval(secs => $3::float8);
	`

	rows, err := s.DB.QueryContext(ctx, q, lats, lngs, s.MaxAge.Seconds())
	if err != nil {
		return nil, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.PlaceKey]string, len(seen))
	for rows.Next() {
		var k domain.PlaceKey
		var label string
		if err := rows.Scan(&k.Lat, &k.Lng, &label); err != nil {
			return nil, fmt.Errorf("get place cache: scan rows: %w", err)
		}
		out[k] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get place cache: row iteration: %w", err)
	}

	return out, nil
}

// Store key -> label mappings in the cache.
func (s *SQLPlaceCache) PutMany(ctx context.Context, labels map[domain.PlaceKey]string) (err error) {
	defer obs.Time(ctx, "place.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	if len(labels) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert place cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO place_cache (lat_e2, lng_e2, label, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (lat_e2, lng_e2) DO UPDATE
	SET label = EXCLUDED.label,
		updated_at = EXCLUDED.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("insert place cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for k, label := range labels {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("insert place cache: empty label for key %d,%d", k.Lat, k.Lng)
		}

		if _, err := stmt.ExecContext(ctx, k.Lat, k.Lng, label); err != nil {
			return fmt.Errorf("insert place cache key=%d,%d: %w", k.Lat, k.Lng, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert place cache commit: %w", err)
	}

	return nil
}
