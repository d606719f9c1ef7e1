package domain

// DistanceProvider names the source of a DistanceResult.
type DistanceProvider string

const (
	ProviderORS         DistanceProvider = "ors"
	ProviderMapy        DistanceProvider = "mapy"
	ProviderGreatCircle DistanceProvider = "great_circle"
)

// Distance and travel duration between two addresses.
// DurationSeconds is nil when the source does not report travel time.
type DistanceResult struct {
	Kilometers      float64          `json:"kilometers"`
	DurationSeconds *int             `json:"duration_seconds,omitempty"`
	Provider        DistanceProvider `json:"provider"`
}

// Route is the raw road distance reported by a routing provider.
type Route struct {
	Meters          float64
	DurationSeconds float64
}
