package domain

import "strings"

// Operator combines two boolean conditions.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// ParseOperator maps stored values to an Operator. Anything other than
// "or" (case-insensitive) is AND.
func ParseOperator(s string) Operator {
	if strings.EqualFold(strings.TrimSpace(s), string(OperatorOr)) {
		return OperatorOr
	}
	return OperatorAnd
}

// Combine applies the operator to a and b.
func (o Operator) Combine(a, b bool) bool {
	if o == OperatorOr {
		return a || b
	}
	return a && b
}

// ShippingRule is one pricing rule. Every upper bound uses 0 for "unbounded"
// and every lower bound uses 0 for "no minimum".
type ShippingRule struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`

	DistanceFrom float64 `json:"distance_from"`
	DistanceTo   float64 `json:"distance_to"`
	BaseRate     float64 `json:"base_rate"`
	PerKmRate    float64 `json:"per_km_rate"`

	MinOrderAmount float64 `json:"min_order_amount"`
	MaxOrderAmount float64 `json:"max_order_amount"`

	ProductCategoryIDs []int `json:"product_category_ids"`
	ShippingClassIDs   []int `json:"shipping_class_ids"`

	WeightMin      float64  `json:"weight_min"`
	WeightMax      float64  `json:"weight_max"`
	WeightOperator Operator `json:"weight_operator"`

	LengthMin          float64  `json:"length_min"`
	LengthMax          float64  `json:"length_max"`
	WidthMin           float64  `json:"width_min"`
	WidthMax           float64  `json:"width_max"`
	HeightMin          float64  `json:"height_min"`
	HeightMax          float64  `json:"height_max"`
	DimensionsOperator Operator `json:"dimensions_operator"`

	Active bool `json:"active"`
}

// HasWeightBounds reports whether the weight family is defined.
func (r ShippingRule) HasWeightBounds() bool {
	return r.WeightMin > 0 || r.WeightMax > 0
}

// HasDimensionBounds reports whether any dimension axis is bounded.
func (r ShippingRule) HasDimensionBounds() bool {
	return r.LengthMin > 0 || r.LengthMax > 0 ||
		r.WidthMin > 0 || r.WidthMax > 0 ||
		r.HeightMin > 0 || r.HeightMax > 0
}
