package handlers

import (
	"context"
	"net/http"
	"shipping-cost-service/internal/api/dto"
	"shipping-cost-service/internal/domain"
	"strings"
)

type Quoter interface {
	Quote(ctx context.Context, order domain.OrderSnapshot) (domain.Quote, error)
	Rates(ctx context.Context, distanceKm float64, items []domain.LineItem) ([]domain.ComputedRate, domain.PackageAttributes, error)
	Fallback(distanceKm float64) domain.ComputedRate
}

// QuoteHandler prices orders.
type QuoteHandler struct {
	Quoter Quoter
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		writeError(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	q, err := h.Quoter.Quote(r.Context(), domain.OrderSnapshot{
		Destination: destination,
		Items:       dto.LineItems(req.Items),
	})
	if err != nil {
		writeServiceError(w, r, err, "distance could not be determined")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QuoteResponse{
		Store: dto.StoreResponse{
			ID:      q.Store.ID,
			Name:    q.Store.Name,
			Address: q.Store.Address,
		},
		Distance: dto.DistanceResponse{
			Origin:          q.Store.Address,
			Destination:     destination,
			Kilometers:      q.Distance.Kilometers,
			DurationSeconds: q.Distance.DurationSeconds,
			Provider:        string(q.Distance.Provider),
		},
		Package:  q.Package,
		Rates:    dto.Rates(q.Rates),
		Selected: dto.Rate(q.Selected),
		Fallback: q.Fallback,
	})
}

// Rates evaluates the active rules at a caller-supplied distance.
func (h *QuoteHandler) Rates(w http.ResponseWriter, r *http.Request) {
	var req dto.RatesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DistanceKm == nil || *req.DistanceKm < 0 {
		writeError(w, r, http.StatusBadRequest, "distance_km must be a non-negative number")
		return
	}

	rates, pkg, err := h.Quoter.Rates(r.Context(), *req.DistanceKm, dto.LineItems(req.Items))
	if err != nil {
		writeServiceError(w, r, err, "rate could not be determined")
		return
	}

	res := dto.RatesResponse{Package: pkg, Rates: dto.Rates(rates)}
	if len(rates) == 0 {
		res.Selected = dto.Rate(h.Quoter.Fallback(*req.DistanceKm))
		res.Fallback = true
	} else {
		res.Selected = res.Rates[0]
	}

	writeJSON(w, r, http.StatusOK, res)
}
