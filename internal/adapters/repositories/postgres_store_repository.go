package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
)

// Postgres-backed implementation of the StoreRepository port.
type PostgresStoreRepository struct{ DB *sql.DB }

func NewPostgresStoreRepository(db *sql.DB) *PostgresStoreRepository {
	return &PostgresStoreRepository{DB: db}
}

// Return all active stores ordered by id.
func (p *PostgresStoreRepository) ListActiveStores(ctx context.Context) (_ []domain.Store, err error) {
	defer obs.Time(ctx, "stores.ListActiveStores")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres store repository: DB is nil")
	}

	query := `
	SELECT id, name, address, lat, lon, active
	FROM stores
	WHERE active
	ORDER BY id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: query stores table: %w", err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0, 8)
	for rows.Next() {
		var (
			s        domain.Store
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &lat, &lon, &s.Active); err != nil {
			return nil, fmt.Errorf("list stores: scan row: %w", err)
		}
		if lat.Valid && lon.Valid {
			s.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		stores = append(stores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: row iteration: %w", err)
	}

	return stores, nil
}

// Persist geocoded coordinates for a store. Used by registry maintenance,
// never by the pricing pipeline.
func (p *PostgresStoreRepository) UpdateCoordinates(ctx context.Context, id int, c domain.Coordinates) error {
	if p.DB == nil {
		return errors.New("postgres store repository: DB is nil")
	}
	if !c.Valid() {
		return fmt.Errorf("update store %d coordinates: out of range: %+v", id, c)
	}

	res, err := p.DB.ExecContext(ctx, `UPDATE stores SET lat = $1, lon = $2 WHERE id = $3;`, c.Lat, c.Lon, id)
	if err != nil {
		return fmt.Errorf("update store %d coordinates: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update store %d coordinates: %w", id, sql.ErrNoRows)
	}

	return nil
}
