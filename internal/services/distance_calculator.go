package services

import (
	"context"
	"fmt"
	"math"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"strings"
)

// DistanceCalculator measures the distance between two addresses. Road
// distance comes from the routing-capable providers; great-circle distance
// is the fallback once both ends are resolved.
type DistanceCalculator struct {
	resolver *AddressResolver
	routers  []ports.RoutingProvider
	cache    *DistanceCache
}

func NewDistanceCalculator(resolver *AddressResolver, cache *DistanceCache) *DistanceCalculator {
	var routers []ports.RoutingProvider
	for _, p := range resolver.Providers() {
		// Prefer providers that can route; the rest only geocode.
		if rp, ok := p.(ports.RoutingProvider); ok {
			routers = append(routers, rp)
		}
	}
	return &DistanceCalculator{resolver: resolver, routers: routers, cache: cache}
}

func (c *DistanceCalculator) Resolver() *AddressResolver { return c.resolver }

func (c *DistanceCalculator) Distance(ctx context.Context, origin, destination string) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "calculator.Distance")(&err)

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return domain.DistanceResult{}, fmt.Errorf("distance: origin and destination required: %w", domain.ErrInvalidInput)
	}

	if res, ok := c.cache.Get(ctx, origin, destination); ok {
		return res, nil
	}

	from, err := c.resolver.Resolve(ctx, origin)
	if err != nil {
		return domain.DistanceResult{}, fmt.Errorf("distance: origin %q: %w: %v", origin, domain.ErrResolutionFailure, err)
	}
	to, err := c.resolver.Resolve(ctx, destination)
	if err != nil {
		return domain.DistanceResult{}, fmt.Errorf("distance: destination %q: %w: %v", destination, domain.ErrResolutionFailure, err)
	}

	return c.measure(ctx, origin, destination, from.Coordinates, to.Coordinates), nil
}

// DistanceBetween measures between already known coordinates. origin and
// destination only name the cache entry; they are not geocoded.
func (c *DistanceCalculator) DistanceBetween(
	ctx context.Context,
	origin, destination string,
	from, to domain.Coordinates,
) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "calculator.DistanceBetween")(&err)

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return domain.DistanceResult{}, fmt.Errorf("distance: origin and destination required: %w", domain.ErrInvalidInput)
	}
	if !from.Valid() || !to.Valid() {
		return domain.DistanceResult{}, fmt.Errorf("distance: invalid coordinates: %w", domain.ErrInvalidInput)
	}

	if res, ok := c.cache.Get(ctx, origin, destination); ok {
		return res, nil
	}
	return c.measure(ctx, origin, destination, from, to), nil
}

// measure computes and caches the distance. A result produced after ctx
// ended may be a great-circle stand-in for a road distance, so it is not cached.
func (c *DistanceCalculator) measure(ctx context.Context, origin, destination string, from, to domain.Coordinates) domain.DistanceResult {
	res := c.between(ctx, from, to)
	if ctx.Err() != nil {
		return res
	}
	c.cache.Set(ctx, origin, destination, res, c.cache.TTL())
	return res
}

// between never fails: routing errors fall through to great-circle.
func (c *DistanceCalculator) between(ctx context.Context, from, to domain.Coordinates) domain.DistanceResult {
	log := obs.FromContext(ctx)

	for _, r := range c.routers {
		if ctx.Err() != nil {
			break
		}
		route, err := r.RouteDistance(ctx, from, to)
		if err != nil {
			log.Warn().Err(err).Str("provider", r.Name()).Msg("routing provider failed, trying next")
			continue
		}
		seconds := int(math.Round(route.DurationSeconds))
		return domain.DistanceResult{
			Kilometers:      route.Meters / 1000,
			DurationSeconds: &seconds,
			Provider:        domain.DistanceProvider(r.Name()),
		}
	}

	log.Info().Msg("using great-circle distance")
	return GreatCircle(from, to)
}

// GreatCircle is the haversine distance between from and to.
func GreatCircle(from, to domain.Coordinates) domain.DistanceResult {
	return domain.DistanceResult{
		Kilometers: from.DistanceKm(to),
		Provider:   domain.ProviderGreatCircle,
	}
}
