package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"time"

	"github.com/goccy/go-json"
)

const distanceKeyPrefix = "distance:"

// DistanceKey hashes the normalized (origin, destination) pair. The pair is
// ordered: A→B and B→A are separate entries.
func DistanceKey(origin, destination string) string {
	sum := sha256.Sum256([]byte(NormalizeAddress(origin) + "|" + NormalizeAddress(destination)))
	return distanceKeyPrefix + hex.EncodeToString(sum[:])
}

// DistanceCache stores computed distances. Store failures behave as misses.
type DistanceCache struct {
	store ports.CacheStore
	ttl   time.Duration
}

func NewDistanceCache(store ports.CacheStore, ttl time.Duration) *DistanceCache {
	return &DistanceCache{store: store, ttl: ttl}
}

func (c *DistanceCache) TTL() time.Duration { return c.ttl }

func (c *DistanceCache) Get(ctx context.Context, origin, destination string) (domain.DistanceResult, bool) {
	b, ok, err := c.store.Get(ctx, DistanceKey(origin, destination))
	if err != nil {
		obs.FromContext(ctx).Warn().Err(err).Msg("distance cache read failed")
		return domain.DistanceResult{}, false
	}
	if !ok {
		return domain.DistanceResult{}, false
	}

	var res domain.DistanceResult
	if err := json.Unmarshal(b, &res); err != nil {
		obs.FromContext(ctx).Warn().Err(err).Msg("distance cache entry corrupt")
		return domain.DistanceResult{}, false
	}
	return res, true
}

func (c *DistanceCache) Set(ctx context.Context, origin, destination string, res domain.DistanceResult, ttl time.Duration) {
	b, err := json.Marshal(res)
	if err != nil {
		obs.FromContext(ctx).Warn().Err(err).Msg("encode distance cache entry")
		return
	}
	if err := c.store.Set(ctx, DistanceKey(origin, destination), b, ttl); err != nil {
		obs.FromContext(ctx).Warn().Err(err).Msg("distance cache write failed")
	}
}
