package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"shipping-cost-service/internal/domain"
	"strings"

	"github.com/goccy/go-json"
)

// Initialize the Postgres schema for registries and the shared cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStoresQuery := `
	CREATE TABLE IF NOT EXISTS stores (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createRulesQuery := `
	CREATE TABLE IF NOT EXISTS shipping_rules (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		priority INTEGER NOT NULL DEFAULT 10,
		distance_from DOUBLE PRECISION NOT NULL DEFAULT 0,
		distance_to DOUBLE PRECISION NOT NULL DEFAULT 0,
		base_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		per_km_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		min_order_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_order_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		product_category_ids JSONB NOT NULL DEFAULT '[]',
		shipping_class_ids JSONB NOT NULL DEFAULT '[]',
		weight_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		weight_max DOUBLE PRECISION NOT NULL DEFAULT 0,
		weight_operator TEXT NOT NULL DEFAULT 'AND',
		length_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		length_max DOUBLE PRECISION NOT NULL DEFAULT 0,
		width_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		width_max DOUBLE PRECISION NOT NULL DEFAULT 0,
		height_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		height_max DOUBLE PRECISION NOT NULL DEFAULT 0,
		dimensions_operator TEXT NOT NULL DEFAULT 'AND',
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createCacheQuery := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at
	ON cache_entries(expires_at);
	`

	statements := []string{
		createStoresQuery,
		createRulesQuery,
		createCacheQuery,
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

// Seed file layout: {"stores": [...], "rules": [...]}.
type Seed struct {
	Stores []domain.Store        `json:"stores"`
	Rules  []domain.ShippingRule `json:"rules"`
}

// Populate stores and rules from a JSON file. Rows are upserted by id.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	if err := validateSeed(data); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range data.Stores {
		var lat, lon *float64
		if s.Coordinates != nil {
			lat, lon = &s.Coordinates.Lat, &s.Coordinates.Lon
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO stores (id, name, address, lat, lon, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			address = EXCLUDED.address,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			active = EXCLUDED.active;
		`, s.ID, strings.TrimSpace(s.Name), strings.TrimSpace(s.Address), lat, lon, s.Active); err != nil {
			return fmt.Errorf("seed: insert store id=%d: %w", s.ID, err)
		}
	}

	for _, r := range data.Rules {
		categories, err := encodeIDs(r.ProductCategoryIDs)
		if err != nil {
			return fmt.Errorf("seed: rule id=%d: %w", r.ID, err)
		}
		classes, err := encodeIDs(r.ShippingClassIDs)
		if err != nil {
			return fmt.Errorf("seed: rule id=%d: %w", r.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `
		INSERT INTO shipping_rules (
			id, name, priority, distance_from, distance_to, base_rate, per_km_rate,
			min_order_amount, max_order_amount, product_category_ids, shipping_class_ids,
			weight_min, weight_max, weight_operator,
			length_min, length_max, width_min, width_max, height_min, height_max,
			dimensions_operator, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			priority = EXCLUDED.priority,
			distance_from = EXCLUDED.distance_from,
			distance_to = EXCLUDED.distance_to,
			base_rate = EXCLUDED.base_rate,
			per_km_rate = EXCLUDED.per_km_rate,
			min_order_amount = EXCLUDED.min_order_amount,
			max_order_amount = EXCLUDED.max_order_amount,
			product_category_ids = EXCLUDED.product_category_ids,
			shipping_class_ids = EXCLUDED.shipping_class_ids,
			weight_min = EXCLUDED.weight_min,
			weight_max = EXCLUDED.weight_max,
			weight_operator = EXCLUDED.weight_operator,
			length_min = EXCLUDED.length_min,
			length_max = EXCLUDED.length_max,
			width_min = EXCLUDED.width_min,
			width_max = EXCLUDED.width_max,
			height_min = EXCLUDED.height_min,
			height_max = EXCLUDED.height_max,
			dimensions_operator = EXCLUDED.dimensions_operator,
			active = EXCLUDED.active;
		`,
			r.ID, strings.TrimSpace(r.Name), r.Priority, r.DistanceFrom, r.DistanceTo, r.BaseRate, r.PerKmRate,
			r.MinOrderAmount, r.MaxOrderAmount, categories, classes,
			r.WeightMin, r.WeightMax, string(domain.ParseOperator(string(r.WeightOperator))),
			r.LengthMin, r.LengthMax, r.WidthMin, r.WidthMax, r.HeightMin, r.HeightMax,
			string(domain.ParseOperator(string(r.DimensionsOperator))), r.Active,
		); err != nil {
			return fmt.Errorf("seed: insert rule id=%d: %w", r.ID, err)
		}
	}

	// Explicit ids do not advance SERIAL sequences.
	for _, table := range []string{"stores", "shipping_rules"} {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s;`, table, table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("seed: reset %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func validateSeed(data Seed) error {
	for i, s := range data.Stores {
		if s.ID <= 0 {
			return fmt.Errorf("invalid store id at index %d: %d", i+1, s.ID)
		}
		if strings.TrimSpace(s.Address) == "" {
			return fmt.Errorf("store at index %d: address cannot be empty", i+1)
		}
		if s.Coordinates != nil && !s.Coordinates.Valid() {
			return fmt.Errorf("store at index %d: coordinates out of range", i+1)
		}
	}

	for i, r := range data.Rules {
		if r.ID <= 0 {
			return fmt.Errorf("invalid rule id at index %d: %d", i+1, r.ID)
		}
		if r.DistanceTo != 0 && r.DistanceTo < r.DistanceFrom {
			return fmt.Errorf("rule id=%d: distance_to %.2f is below distance_from %.2f", r.ID, r.DistanceTo, r.DistanceFrom)
		}
	}

	return nil
}

func encodeIDs(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode ids: %w", err)
	}
	return b, nil
}

func decodeIDs(raw []byte) ([]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode ids: %w", err)
	}
	return ids, nil
}
