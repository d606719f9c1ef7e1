package domain

// RateBreakdown shows the rule inputs a cost was computed from.
type RateBreakdown struct {
	BaseRate  float64 `json:"base_rate"`
	PerKmRate float64 `json:"per_km_rate"`
}

// ComputedRate is the cost of shipping under one applicable rule.
type ComputedRate struct {
	RuleID     int           `json:"rule_id"`
	Label      string        `json:"label"`
	Cost       float64       `json:"cost"`
	DistanceKm float64       `json:"distance_km"`
	Breakdown  RateBreakdown `json:"breakdown"`
}

// Quote is the outcome of pricing one order.
// Fallback is true when no rule applied and Selected is the flat rate.
type Quote struct {
	Store    Store             `json:"store"`
	Distance DistanceResult    `json:"distance"`
	Package  PackageAttributes `json:"package"`
	Rates    []ComputedRate    `json:"rates"`
	Selected ComputedRate      `json:"selected"`
	Fallback bool              `json:"fallback"`
}
