package ports

import (
	"context"
	"shipping-cost-service/internal/domain"
)

// Contract for turning free-text addresses into candidate coordinates.
type GeocodingProvider interface {
	// Name identifies the provider in logs and results.
	Name() string
	// Return up to limit candidates for address, best first.
	Geocode(ctx context.Context, address string, limit int) ([]domain.Candidate, error)
}

// Optional extension of GeocodingProvider that can compute road distances.
type RoutingProvider interface {
	GeocodingProvider
	// Return road distance and travel duration between two points.
	RouteDistance(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error)
}
