package ports

import (
	"context"
	"shipping-cost-service/internal/domain"
)

// Port: read-only access to the pricing rule registry.
type RuleRepository interface {
	// Retrieve active rules ordered by priority.
	ListActiveRules(ctx context.Context) ([]domain.ShippingRule, error)
}

// Port: read-only access to the store registry.
type StoreRepository interface {
	// Retrieve stores that can ship orders.
	ListActiveStores(ctx context.Context) ([]domain.Store, error)
}
