package services

import (
	"context"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const geocodeKeyPrefix = "geocode:"

// NormalizeAddress trims, collapses whitespace and lowercases address text.
// Cache keys are built from the normalized form.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// GeoCache stores resolved addresses. Store failures behave as misses.
type GeoCache struct {
	store ports.CacheStore
	ttl   time.Duration
}

func NewGeoCache(store ports.CacheStore, ttl time.Duration) *GeoCache {
	return &GeoCache{store: store, ttl: ttl}
}

// TTL is the expiry applied by the resolver.
func (c *GeoCache) TTL() time.Duration { return c.ttl }

func (c *GeoCache) key(address string) string {
	return geocodeKeyPrefix + NormalizeAddress(address)
}

func (c *GeoCache) Get(ctx context.Context, address string) (domain.GeocodeResult, bool) {
	b, ok, err := c.store.Get(ctx, c.key(address))
	if err != nil {
		obs.FromContext(ctx).Warn().Err(err).Str("address", address).Msg("geocode cache read failed")
		return domain.GeocodeResult{}, false
	}
	if !ok {
		return domain.GeocodeResult{}, false
	}

	var res domain.GeocodeResult
	if err := json.Unmarshal(b, &res); err != nil {
		obs.FromContext(ctx).Warn().Err(err).Str("address", address).Msg("geocode cache entry corrupt")
		return domain.GeocodeResult{}, false
	}
	return res, true
}

func (c *GeoCache) Set(ctx context.Context, address string, res domain.GeocodeResult, ttl time.Duration) {
	b, err := json.Marshal(res)
	if err != nil {
		obs.FromContext(ctx).Warn().Err(err).Msg("encode geocode cache entry")
		return
	}
	if err := c.store.Set(ctx, c.key(address), b, ttl); err != nil {
		obs.FromContext(ctx).Warn().Err(err).Str("address", address).Msg("geocode cache write failed")
	}
}

// Invalidate drops the cached entry for address.
func (c *GeoCache) Invalidate(ctx context.Context, address string) error {
	return c.store.Delete(ctx, c.key(address))
}
