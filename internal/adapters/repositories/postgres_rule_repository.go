package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
)

// Postgres-backed implementation of the RuleRepository port.
type PostgresRuleRepository struct{ DB *sql.DB }

func NewPostgresRuleRepository(db *sql.DB) *PostgresRuleRepository {
	return &PostgresRuleRepository{DB: db}
}

// Return active rules ordered by priority, then id.
func (p *PostgresRuleRepository) ListActiveRules(ctx context.Context) (_ []domain.ShippingRule, err error) {
	defer obs.Time(ctx, "rules.ListActiveRules")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres rule repository: DB is nil")
	}

	query := `
	SELECT
		id, name, priority, distance_from, distance_to, base_rate, per_km_rate,
		min_order_amount, max_order_amount, product_category_ids, shipping_class_ids,
		weight_min, weight_max, weight_operator,
		length_min, length_max, width_min, width_max, height_min, height_max,
		dimensions_operator, active
	FROM shipping_rules
	WHERE active
	ORDER BY priority, id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rules: query shipping_rules table: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.ShippingRule, 0, 16)
	for rows.Next() {
		var (
			r                   domain.ShippingRule
			categories, classes []byte
			weightOp, dimOp     string
		)
		err := rows.Scan(
			&r.ID, &r.Name, &r.Priority, &r.DistanceFrom, &r.DistanceTo, &r.BaseRate, &r.PerKmRate,
			&r.MinOrderAmount, &r.MaxOrderAmount, &categories, &classes,
			&r.WeightMin, &r.WeightMax, &weightOp,
			&r.LengthMin, &r.LengthMax, &r.WidthMin, &r.WidthMax, &r.HeightMin, &r.HeightMax,
			&dimOp, &r.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("list rules: scan row: %w", err)
		}

		if r.ProductCategoryIDs, err = decodeIDs(categories); err != nil {
			return nil, fmt.Errorf("list rules: rule id=%d categories: %w", r.ID, err)
		}
		if r.ShippingClassIDs, err = decodeIDs(classes); err != nil {
			return nil, fmt.Errorf("list rules: rule id=%d shipping classes: %w", r.ID, err)
		}
		r.WeightOperator = domain.ParseOperator(weightOp)
		r.DimensionsOperator = domain.ParseOperator(dimOp)

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rules: row iteration: %w", err)
	}

	return rules, nil
}
