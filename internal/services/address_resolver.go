package services

import (
	"context"
	"fmt"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"strings"
)

// DefaultCandidateLimit is how many candidates are requested per provider.
const DefaultCandidateLimit = 10

// AddressResolver turns address text into coordinates using an ordered
// provider chain and a GeoCache.
type AddressResolver struct {
	providers []ports.GeocodingProvider
	cache     *GeoCache
	policy    MatchPolicy
	verify    bool
	limit     int
}

// NewAddressResolver builds a resolver. With verify set and more than one
// provider, candidates are checked against the top hit of another provider;
// otherwise text similarity is used.
func NewAddressResolver(
	providers []ports.GeocodingProvider,
	cache *GeoCache,
	policy MatchPolicy,
	verify bool,
) *AddressResolver {
	return &AddressResolver{
		providers: providers,
		cache:     cache,
		policy:    policy,
		verify:    verify,
		limit:     DefaultCandidateLimit,
	}
}

// Providers returns the chain in failover order.
func (r *AddressResolver) Providers() []ports.GeocodingProvider {
	return r.providers
}

// Resolve returns the best match for address. Errors satisfy
// errors.Is(err, domain.ErrNotFound).
func (r *AddressResolver) Resolve(ctx context.Context, address string) (_ domain.GeocodeResult, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	if strings.TrimSpace(address) == "" {
		return domain.GeocodeResult{}, fmt.Errorf("resolve address: empty address: %w", domain.ErrInvalidInput)
	}

	if res, ok := r.cache.Get(ctx, address); ok {
		res.OriginalAddress = address
		return res, nil
	}

	log := obs.FromContext(ctx)
	sawCandidates := false
	points := map[int]*domain.Coordinates{}

	for i, p := range r.providers {
		if ctx.Err() != nil {
			return domain.GeocodeResult{}, fmt.Errorf("resolve address %q: %w: %v", address, domain.ErrNotFound, ctx.Err())
		}

		// A provider that already failed or came back empty during
		// verification is not asked again.
		if point, seen := points[i]; seen && point == nil {
			continue
		}

		cands, err := p.Geocode(ctx, address, r.limit)
		if err != nil {
			points[i] = nil
			log.Warn().Err(err).Str("provider", p.Name()).Msg("geocoding provider failed, trying next")
			continue
		}
		if len(cands) == 0 {
			points[i] = nil
			log.Debug().Str("provider", p.Name()).Str("address", address).Msg("no candidates")
			continue
		}
		sawCandidates = true
		top := cands[0].Coordinates
		points[i] = &top

		best, ok := r.pick(ctx, address, i, cands, points)
		if !ok {
			log.Debug().Str("provider", p.Name()).Int("candidates", len(cands)).Msg("no candidate within tolerance")
			continue
		}

		res := domain.GeocodeResult{
			Coordinates:      best.Coordinates,
			FormattedAddress: best.FormattedAddress,
			OriginalAddress:  address,
			Provider:         p.Name(),
		}
		r.cache.Set(ctx, address, res, r.cache.TTL())
		return res, nil
	}

	if sawCandidates {
		return domain.GeocodeResult{}, fmt.Errorf("resolve address %q: %w", address, domain.ErrNoMatchWithinTolerance)
	}
	return domain.GeocodeResult{}, fmt.Errorf("resolve address %q: %w", address, domain.ErrNotFound)
}

func (r *AddressResolver) pick(
	ctx context.Context,
	address string,
	from int,
	cands []domain.Candidate,
	points map[int]*domain.Coordinates,
) (domain.Candidate, bool) {
	if point, ok := r.verificationPoint(ctx, address, from, points); ok {
		best, _, found := ClosestWithin(cands, point, r.policy.ToleranceKm)
		return best, found
	}
	best, _, found := MostSimilar(cands, address, r.policy.MinSimilarity)
	return best, found
}

// verificationPoint returns the top hit of the first other provider that
// answers. Every provider is asked at most once per Resolve call; points
// holds the outcome, nil meaning failed or empty.
func (r *AddressResolver) verificationPoint(
	ctx context.Context,
	address string,
	from int,
	points map[int]*domain.Coordinates,
) (domain.Coordinates, bool) {
	if !r.verify || len(r.providers) < 2 {
		return domain.Coordinates{}, false
	}

	for j, p := range r.providers {
		if j == from {
			continue
		}
		point, seen := points[j]
		if !seen {
			cands, err := p.Geocode(ctx, address, 1)
			if err != nil {
				obs.FromContext(ctx).Warn().Err(err).Str("provider", p.Name()).Msg("verification lookup failed")
			} else if len(cands) > 0 {
				c := cands[0].Coordinates
				point = &c
			}
			points[j] = point
		}
		if point != nil {
			return *point, true
		}
	}
	return domain.Coordinates{}, false
}
