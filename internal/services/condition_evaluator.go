package services

import (
	"shipping-cost-service/internal/domain"

	"github.com/rs/zerolog"
)

// RuleExplanation records how each condition family of a rule evaluated.
type RuleExplanation struct {
	RuleID int

	Distance   bool
	OrderValue bool
	Membership bool

	WeightDefined     bool
	Weight            bool
	DimensionsDefined bool
	Dimensions        bool
	Physical          bool

	Applies bool
}

func (e RuleExplanation) MarshalZerologObject(ev *zerolog.Event) {
	ev.Int("rule_id", e.RuleID).
		Bool("distance", e.Distance).
		Bool("order_value", e.OrderValue).
		Bool("membership", e.Membership).
		Bool("physical", e.Physical).
		Bool("applies", e.Applies)
	if e.WeightDefined {
		ev.Bool("weight", e.Weight)
	}
	if e.DimensionsDefined {
		ev.Bool("dimensions", e.Dimensions)
	}
}

// RuleApplies reports whether rule covers a package shipped distanceKm.
func RuleApplies(rule domain.ShippingRule, distanceKm float64, pkg domain.PackageAttributes) bool {
	return ExplainRule(rule, distanceKm, pkg).Applies
}

// ExplainRule evaluates every condition family of rule.
//
// Min and max of one measure form a band and must both hold. The dimension
// operator joins the bounded axes; the weight operator joins the weight and
// dimension families, but only when both are bounded. An undefined family
// never satisfies an OR on its own.
func ExplainRule(rule domain.ShippingRule, distanceKm float64, pkg domain.PackageAttributes) RuleExplanation {
	e := RuleExplanation{RuleID: rule.ID}

	e.Distance = distanceKm >= rule.DistanceFrom &&
		(rule.DistanceTo == 0 || distanceKm <= rule.DistanceTo)
	if !e.Distance {
		return e
	}

	e.OrderValue = inBand(pkg.OrderValue, rule.MinOrderAmount, rule.MaxOrderAmount)

	e.Membership = true
	if len(rule.ProductCategoryIDs) > 0 && !pkg.ProductCategoryIDs.ContainsAny(rule.ProductCategoryIDs) {
		e.Membership = false
	}
	if len(rule.ShippingClassIDs) > 0 && !pkg.ShippingClassIDs.ContainsAny(rule.ShippingClassIDs) {
		e.Membership = false
	}

	e.WeightDefined = rule.HasWeightBounds()
	if e.WeightDefined {
		e.Weight = inBand(pkg.TotalWeightKg, rule.WeightMin, rule.WeightMax)
	}

	e.DimensionsDefined = rule.HasDimensionBounds()
	if e.DimensionsDefined {
		e.Dimensions = dimensionsMatch(rule, pkg)
	}

	switch {
	case e.WeightDefined && e.DimensionsDefined:
		e.Physical = rule.WeightOperator.Combine(e.Weight, e.Dimensions)
	case e.WeightDefined:
		e.Physical = e.Weight
	case e.DimensionsDefined:
		e.Physical = e.Dimensions
	default:
		e.Physical = true
	}

	e.Applies = e.Distance && e.OrderValue && e.Membership && e.Physical
	return e
}

func dimensionsMatch(rule domain.ShippingRule, pkg domain.PackageAttributes) bool {
	axes := []struct {
		value, min, max float64
	}{
		{pkg.MaxLengthCm, rule.LengthMin, rule.LengthMax},
		{pkg.MaxWidthCm, rule.WidthMin, rule.WidthMax},
		{pkg.TotalHeightCm, rule.HeightMin, rule.HeightMax},
	}

	var (
		result  bool
		defined bool
	)
	for _, a := range axes {
		if a.min <= 0 && a.max <= 0 {
			continue
		}
		ok := inBand(a.value, a.min, a.max)
		if !defined {
			result, defined = ok, true
			continue
		}
		result = rule.DimensionsOperator.Combine(result, ok)
	}
	return result
}

// inBand treats a zero bound as open.
func inBand(v, lo, hi float64) bool {
	return (lo == 0 || v >= lo) && (hi == 0 || v <= hi)
}
