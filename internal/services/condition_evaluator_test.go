package services

import (
	"shipping-cost-service/internal/domain"
	"testing"
)

func TestRuleAppliesNarrowWeightBandWithOr(t *testing.T) {
	rule := domain.ShippingRule{
		ID: 26, Active: true,
		WeightMin: 75, WeightMax: 100, WeightOperator: domain.OperatorOr,
	}
	pkg := Aggregate([]domain.LineItem{{Quantity: 3, WeightKg: 3}})

	if RuleApplies(rule, 50, pkg) {
		t.Fatal("9 kg package must not match a 75-100 kg band, even with OR")
	}

	heavy := Aggregate([]domain.LineItem{{Quantity: 1, WeightKg: 80}})
	if !RuleApplies(rule, 50, heavy) {
		t.Fatal("80 kg package should match the 75-100 kg band")
	}
}

func TestRuleApplies(t *testing.T) {
	pkg := domain.PackageAttributes{
		TotalWeightKg:      9,
		MaxLengthCm:        120,
		MaxWidthCm:         40,
		TotalHeightCm:      30,
		OrderValue:         6000,
		ProductCategoryIDs: domain.NewIDSet(12),
		ShippingClassIDs:   domain.NewIDSet(3),
	}

	tests := []struct {
		name     string
		rule     domain.ShippingRule
		distance float64
		want     bool
	}{
		{"unbounded rule", domain.ShippingRule{}, 10, true},
		{"inside distance band", domain.ShippingRule{DistanceFrom: 0, DistanceTo: 100}, 100, true},
		{"beyond distance band", domain.ShippingRule{DistanceTo: 100}, 100.01, false},
		{"below distance start", domain.ShippingRule{DistanceFrom: 20}, 19.9, false},
		{"open-ended distance", domain.ShippingRule{DistanceFrom: 20}, 5000, true},
		{"min order met", domain.ShippingRule{MinOrderAmount: 5000}, 1, true},
		{"max order exceeded", domain.ShippingRule{MaxOrderAmount: 5000}, 1, false},
		{"category matches", domain.ShippingRule{ProductCategoryIDs: []int{99, 12}}, 1, true},
		{"category missing", domain.ShippingRule{ProductCategoryIDs: []int{99}}, 1, false},
		{"class missing", domain.ShippingRule{ShippingClassIDs: []int{4}}, 1, false},
		{"category ok but class missing", domain.ShippingRule{ProductCategoryIDs: []int{12}, ShippingClassIDs: []int{4}}, 1, false},
		{"weight band AND", domain.ShippingRule{WeightMin: 5, WeightMax: 10}, 1, true},
		{"weight above max", domain.ShippingRule{WeightMax: 5}, 1, false},
		{"length only", domain.ShippingRule{LengthMax: 100}, 1, false},
		{"dimensions AND all axes", domain.ShippingRule{LengthMax: 150, WidthMax: 50, HeightMax: 40}, 1, true},
		{"dimensions AND one axis fails", domain.ShippingRule{LengthMax: 100, WidthMax: 50}, 1, false},
		{"dimensions OR one axis passes", domain.ShippingRule{LengthMax: 100, WidthMax: 50, DimensionsOperator: domain.OperatorOr}, 1, true},
		{"weight AND dimensions, dimension fails", domain.ShippingRule{WeightMax: 10, LengthMax: 100}, 1, false},
		{"weight OR dimensions, dimension fails", domain.ShippingRule{WeightMax: 10, LengthMax: 100, WeightOperator: domain.OperatorOr}, 1, true},
		{"weight OR dimensions, both fail", domain.ShippingRule{WeightMax: 5, LengthMax: 100, WeightOperator: domain.OperatorOr}, 1, false},
		{"dimensions only with OR weight operator", domain.ShippingRule{LengthMax: 100, WeightOperator: domain.OperatorOr}, 1, false},
		{"physical ok but distance fails", domain.ShippingRule{DistanceTo: 5, WeightMax: 10}, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuleApplies(tt.rule, tt.distance, pkg); got != tt.want {
				t.Fatalf("RuleApplies = %v, want %v (%+v)", got, tt.want, ExplainRule(tt.rule, tt.distance, pkg))
			}
		})
	}
}

func TestExplainRuleShortCircuitsOnDistance(t *testing.T) {
	e := ExplainRule(domain.ShippingRule{ID: 7, DistanceTo: 10}, 20, Aggregate(nil))
	if e.Distance || e.Applies || e.OrderValue {
		t.Fatalf("expected everything false after distance failure; got %+v", e)
	}
	if e.RuleID != 7 {
		t.Fatalf("RuleID = %d", e.RuleID)
	}
}

func TestExplainRuleFamilies(t *testing.T) {
	rule := domain.ShippingRule{WeightMin: 1, HeightMax: 10}
	e := ExplainRule(rule, 0, domain.PackageAttributes{TotalWeightKg: 2, TotalHeightCm: 20})
	if !e.WeightDefined || !e.Weight {
		t.Fatalf("weight family = %+v", e)
	}
	if !e.DimensionsDefined || e.Dimensions {
		t.Fatalf("dimension family = %+v", e)
	}
	if e.Physical || e.Applies {
		t.Fatalf("AND of weight and dimensions should fail; got %+v", e)
	}
}
