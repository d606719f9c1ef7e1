package handlers

import (
	"context"
	"net/http"
	"shipping-cost-service/internal/api/dto"
	"shipping-cost-service/internal/domain"
	"strings"
)

type AddressResolver interface {
	Resolve(ctx context.Context, address string) (domain.GeocodeResult, error)
}

type DistanceCalculator interface {
	Distance(ctx context.Context, origin, destination string) (domain.DistanceResult, error)
}

// GeoHandler exposes address resolution and distance lookups.
type GeoHandler struct {
	Resolver   AddressResolver
	Calculator DistanceCalculator
}

func (h *GeoHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	res, err := h.Resolver.Resolve(r.Context(), address)
	if err != nil {
		writeServiceError(w, r, err, "address could not be resolved")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Address:          address,
		FormattedAddress: res.FormattedAddress,
		Lat:              res.Coordinates.Lat,
		Lon:              res.Coordinates.Lon,
		Provider:         res.Provider,
	})
}

func (h *GeoHandler) Distance(w http.ResponseWriter, r *http.Request) {
	origin := strings.TrimSpace(r.URL.Query().Get("origin"))
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	res, err := h.Calculator.Distance(r.Context(), origin, destination)
	if err != nil {
		writeServiceError(w, r, err, "distance could not be determined")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		Origin:          origin,
		Destination:     destination,
		Kilometers:      res.Kilometers,
		DurationSeconds: res.DurationSeconds,
		Provider:        string(res.Provider),
	})
}
