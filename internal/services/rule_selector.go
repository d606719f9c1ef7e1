package services

import (
	"cmp"
	"shipping-cost-service/internal/domain"
	"slices"
)

// SelectRates prices every active rule that applies, cheapest priority
// number first. Ties keep ascending rule id. The result is empty, not nil,
// when nothing applies.
func SelectRates(rules []domain.ShippingRule, distanceKm float64, pkg domain.PackageAttributes) []domain.ComputedRate {
	applicable := make([]domain.ShippingRule, 0, len(rules))
	for _, r := range rules {
		if r.Active && RuleApplies(r, distanceKm, pkg) {
			applicable = append(applicable, r)
		}
	}

	slices.SortStableFunc(applicable, func(a, b domain.ShippingRule) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]domain.ComputedRate, 0, len(applicable))
	for _, r := range applicable {
		out = append(out, domain.ComputedRate{
			RuleID:     r.ID,
			Label:      r.Name,
			Cost:       RuleCost(r, distanceKm),
			DistanceKm: distanceKm,
			Breakdown: domain.RateBreakdown{
				BaseRate:  r.BaseRate,
				PerKmRate: r.PerKmRate,
			},
		})
	}
	return out
}

// RuleCost is baseRate + perKmRate*distanceKm, never below zero.
func RuleCost(r domain.ShippingRule, distanceKm float64) float64 {
	return max(0, r.BaseRate+r.PerKmRate*distanceKm)
}
