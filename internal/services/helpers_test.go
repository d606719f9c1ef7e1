package services

import (
	"context"
	"errors"
	"math"
	"shipping-cost-service/internal/adapters/cache"
	"shipping-cost-service/internal/adapters/geocoding"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/ports"
	"time"
)

var (
	prague = domain.Coordinates{Lat: 50.0755, Lon: 14.4378}
	brno   = domain.Coordinates{Lat: 49.1951, Lon: 16.6068}
)

// kmNorth moves c north by km. Pure latitude offsets are exact under haversine.
func kmNorth(c domain.Coordinates, km float64) domain.Coordinates {
	return domain.Coordinates{Lat: c.Lat + km/(domain.EarthRadiusKm*math.Pi/180), Lon: c.Lon}
}

func newTestResolver(verify bool, providers ...ports.GeocodingProvider) *AddressResolver {
	gc := NewGeoCache(cache.NewMemoryStore(time.Minute), time.Hour)
	return NewAddressResolver(providers, gc, DefaultMatchPolicy(), verify)
}

func pragueBrnoProvider(name string) *geocoding.StaticProvider {
	return geocoding.NewStaticProvider(name).
		WithCandidates("Store A, Prague", domain.Candidate{Coordinates: prague, FormattedAddress: "Store A, Prague, Czechia"}).
		WithCandidates("Brno", domain.Candidate{Coordinates: brno, FormattedAddress: "Brno, Czechia"})
}

// geocodeOnly hides RouteDistance so the provider cannot route.
type geocodeOnly struct {
	ports.GeocodingProvider
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func (failingStore) Delete(context.Context, string) error { return errors.New("store down") }

type staticRules struct {
	rules []domain.ShippingRule
	err   error
}

func (s staticRules) ListActiveRules(context.Context) ([]domain.ShippingRule, error) {
	return s.rules, s.err
}

type staticStores struct {
	stores []domain.Store
	err    error
}

func (s staticStores) ListActiveStores(context.Context) ([]domain.Store, error) {
	return s.stores, s.err
}
