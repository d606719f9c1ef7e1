package services

import (
	"context"
	"fmt"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"strings"
)

// QuoteOptions configures the flat rate used when no rule applies.
type QuoteOptions struct {
	FallbackRate  float64
	FallbackLabel string
	Debug         bool
}

// QuoteService prices an order end to end.
type QuoteService struct {
	rules   ports.RuleRepository
	locator *StoreLocator
	opts    QuoteOptions
}

func NewQuoteService(rules ports.RuleRepository, locator *StoreLocator, opts QuoteOptions) *QuoteService {
	if opts.FallbackLabel == "" {
		opts.FallbackLabel = "Flat rate"
	}
	return &QuoteService{rules: rules, locator: locator, opts: opts}
}

// Quote picks the shipping store, measures the distance and evaluates the
// active rules. When no rule applies the flat fallback rate is selected.
func (s *QuoteService) Quote(ctx context.Context, order domain.OrderSnapshot) (_ domain.Quote, err error) {
	defer obs.Time(ctx, "quote.Quote")(&err)

	if strings.TrimSpace(order.Destination) == "" {
		return domain.Quote{}, fmt.Errorf("quote: empty destination: %w", domain.ErrInvalidInput)
	}

	pkg := Aggregate(order.Items)

	store, dist, err := s.locator.Locate(ctx, order.Destination)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote: %w", err)
	}

	rates, err := s.evaluate(ctx, dist.Kilometers, pkg)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote: %w", err)
	}

	q := domain.Quote{
		Store:    store,
		Distance: dist,
		Package:  pkg,
		Rates:    rates,
	}
	if len(rates) == 0 {
		q.Selected = s.fallback(dist.Kilometers)
		q.Fallback = true
		obs.FromContext(ctx).Info().
			Float64("distance_km", dist.Kilometers).
			Float64("cost", q.Selected.Cost).
			Msg("no shipping rule applied, using fallback rate")
	} else {
		q.Selected = rates[0]
	}

	return q, nil
}

// Rates evaluates the active rules for a known distance.
func (s *QuoteService) Rates(ctx context.Context, distanceKm float64, items []domain.LineItem) (_ []domain.ComputedRate, _ domain.PackageAttributes, err error) {
	defer obs.Time(ctx, "quote.Rates")(&err)

	if distanceKm < 0 {
		return nil, domain.PackageAttributes{}, fmt.Errorf("rates: negative distance: %w", domain.ErrInvalidInput)
	}

	pkg := Aggregate(items)
	rates, err := s.evaluate(ctx, distanceKm, pkg)
	if err != nil {
		return nil, domain.PackageAttributes{}, fmt.Errorf("rates: %w", err)
	}
	return rates, pkg, nil
}

// Fallback is the flat rate for distanceKm.
func (s *QuoteService) Fallback(distanceKm float64) domain.ComputedRate {
	return s.fallback(distanceKm)
}

func (s *QuoteService) evaluate(ctx context.Context, distanceKm float64, pkg domain.PackageAttributes) ([]domain.ComputedRate, error) {
	rules, err := s.rules.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}

	if s.opts.Debug {
		log := obs.FromContext(ctx)
		for _, r := range rules {
			log.Info().Object("rule", ExplainRule(r, distanceKm, pkg)).Float64("distance_km", distanceKm).Msg("rule evaluated")
		}
	}

	return SelectRates(rules, distanceKm, pkg), nil
}

func (s *QuoteService) fallback(distanceKm float64) domain.ComputedRate {
	cost := max(0, s.opts.FallbackRate)
	return domain.ComputedRate{
		Label:      s.opts.FallbackLabel,
		Cost:       cost,
		DistanceKm: distanceKm,
		Breakdown:  domain.RateBreakdown{BaseRate: cost},
	}
}
