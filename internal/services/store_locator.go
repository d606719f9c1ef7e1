package services

import (
	"context"
	"errors"
	"fmt"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
)

var ErrNoStore = fmt.Errorf("no active store with known location: %w", domain.ErrNotFound)

// StoreLocator picks the store an order ships from.
type StoreLocator struct {
	stores ports.StoreRepository
	calc   *DistanceCalculator
}

func NewStoreLocator(stores ports.StoreRepository, calc *DistanceCalculator) *StoreLocator {
	return &StoreLocator{stores: stores, calc: calc}
}

// Locate returns the active store closest to destination as the crow flies,
// and the distance from it to destination. Stored coordinates are used as
// is; only stores without them are resolved, and the registry is not updated.
func (l *StoreLocator) Locate(ctx context.Context, destination string) (_ domain.Store, _ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "locator.Locate")(&err)

	stores, err := l.stores.ListActiveStores(ctx)
	if err != nil {
		return domain.Store{}, domain.DistanceResult{}, fmt.Errorf("locate store: list stores: %w", err)
	}
	if len(stores) == 0 {
		return domain.Store{}, domain.DistanceResult{}, fmt.Errorf("locate store: %w", ErrNoStore)
	}

	resolver := l.calc.Resolver()
	dest, err := resolver.Resolve(ctx, destination)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return domain.Store{}, domain.DistanceResult{}, fmt.Errorf("locate store: %w", err)
		}
		return domain.Store{}, domain.DistanceResult{}, fmt.Errorf("locate store: destination: %w: %v", domain.ErrResolutionFailure, err)
	}

	var (
		nearest domain.Store
		bestKm  float64
		found   bool
	)
	for _, s := range stores {
		coords, ok := l.storeCoordinates(ctx, s)
		if !ok {
			continue
		}
		km := coords.DistanceKm(dest.Coordinates)
		if !found || km < bestKm {
			nearest, bestKm, found = s, km, true
			nearest.Coordinates = &coords
		}
	}
	if !found {
		return domain.Store{}, domain.DistanceResult{}, fmt.Errorf("locate store: %w", ErrNoStore)
	}

	dist, err := l.calc.DistanceBetween(ctx, nearest.Address, destination, *nearest.Coordinates, dest.Coordinates)
	if err != nil {
		return domain.Store{}, domain.DistanceResult{}, fmt.Errorf("locate store: distance from %q: %w", nearest.Name, err)
	}

	return nearest, dist, nil
}

func (l *StoreLocator) storeCoordinates(ctx context.Context, s domain.Store) (domain.Coordinates, bool) {
	if s.Coordinates != nil && s.Coordinates.Valid() {
		return *s.Coordinates, true
	}
	res, err := l.calc.Resolver().Resolve(ctx, s.Address)
	if err != nil {
		obs.FromContext(ctx).Warn().Err(err).Int("store_id", s.ID).Msg("store address could not be resolved, skipping")
		return domain.Coordinates{}, false
	}
	return res.Coordinates, true
}
