package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shipping-cost-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/zoobzio/clockz"
)

// SQLStore is a Postgres-backed CacheStore over the cache_entries table.
// Expired rows are ignored on read and removed by PurgeExpired.
type SQLStore struct {
	DB    *sql.DB
	clock clockz.Clock
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db, clock: clockz.RealClock}
}

// WithClock replaces the time source used for expiry.
func (s *SQLStore) WithClock(clock clockz.Clock) *SQLStore {
	s.clock = clock
	return s
}

func (s *SQLStore) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("sql cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get sql cache: key must not be empty")
	}

	q := `
	SELECT value
    FROM cache_entries
    WHERE key = $1
        AND expires_at > $2;
	`

	var value []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.clock.Now()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get sql cache: query cache_entries table: %w", err)
	}

	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("sql cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert sql cache: key must not be empty")
	}

	expiresAt := s.clock.Now().Add(ttl)
	if ttl <= 0 {
		expiresAt = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO cache_entries (key, value, expires_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at;
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("insert sql cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if s.DB == nil {
		return errors.New("sql cache: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("delete sql cache key=%q: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= $1;`, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("purge sql cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sql cache: rows affected: %w", err)
	}
	return n, nil
}
