package dto

import "shipping-cost-service/internal/domain"

type LineItemRequest struct {
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	WeightKg        float64 `json:"weight_kg"`
	LengthCm        float64 `json:"length_cm"`
	WidthCm         float64 `json:"width_cm"`
	HeightCm        float64 `json:"height_cm"`
	LineTotal       float64 `json:"line_total"`
	CategoryIDs     []int   `json:"category_ids"`
	ShippingClassID int     `json:"shipping_class_id"`
}

func LineItems(in []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, domain.LineItem{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			WeightKg:        it.WeightKg,
			LengthCm:        it.LengthCm,
			WidthCm:         it.WidthCm,
			HeightCm:        it.HeightCm,
			LineTotal:       it.LineTotal,
			CategoryIDs:     it.CategoryIDs,
			ShippingClassID: it.ShippingClassID,
		})
	}
	return out
}

type QuoteRequest struct {
	Destination string            `json:"destination"`
	Items       []LineItemRequest `json:"items"`
}

type RatesRequest struct {
	DistanceKm *float64          `json:"distance_km"`
	Items      []LineItemRequest `json:"items"`
}

type GeocodeResponse struct {
	Address          string  `json:"address"`
	FormattedAddress string  `json:"formatted_address"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Provider         string  `json:"provider,omitempty"`
}

type DistanceResponse struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Kilometers      float64 `json:"kilometers"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	Provider        string  `json:"provider"`
}

type RateResponse struct {
	RuleID     int     `json:"rule_id"`
	Label      string  `json:"label"`
	Cost       float64 `json:"cost"`
	DistanceKm float64 `json:"distance_km"`
	BaseRate   float64 `json:"base_rate"`
	PerKmRate  float64 `json:"per_km_rate"`
}

func Rates(in []domain.ComputedRate) []RateResponse {
	out := make([]RateResponse, 0, len(in))
	for _, r := range in {
		out = append(out, Rate(r))
	}
	return out
}

func Rate(r domain.ComputedRate) RateResponse {
	return RateResponse{
		RuleID:     r.RuleID,
		Label:      r.Label,
		Cost:       r.Cost,
		DistanceKm: r.DistanceKm,
		BaseRate:   r.Breakdown.BaseRate,
		PerKmRate:  r.Breakdown.PerKmRate,
	}
}

type StoreResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type QuoteResponse struct {
	Store    StoreResponse            `json:"store"`
	Distance DistanceResponse         `json:"distance"`
	Package  domain.PackageAttributes `json:"package"`
	Rates    []RateResponse           `json:"rates"`
	Selected RateResponse             `json:"selected"`
	Fallback bool                     `json:"fallback"`
}

type RatesResponse struct {
	Package  domain.PackageAttributes `json:"package"`
	Rates    []RateResponse           `json:"rates"`
	Selected RateResponse             `json:"selected"`
	Fallback bool                     `json:"fallback"`
}
