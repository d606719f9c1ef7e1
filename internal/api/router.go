package api

import (
	"net/http"
	"shipping-cost-service/internal/api/handlers"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Resolver   handlers.AddressResolver
	Calculator handlers.DistanceCalculator
	Quoter     handlers.Quoter
	Timeout    time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestMiddleware)
	r.Use(middleware.Recoverer)
	if d.Timeout > 0 {
		r.Use(middleware.Timeout(d.Timeout))
	}

	geo := &handlers.GeoHandler{Resolver: d.Resolver, Calculator: d.Calculator}
	quotes := &handlers.QuoteHandler{Quoter: d.Quoter}

	r.Get("/health", handlers.Health)
	r.Get("/geocode", geo.Geocode)
	r.Get("/distance", geo.Distance)
	r.Post("/quotes", quotes.Quote)
	r.Post("/rates", quotes.Rates)

	return r
}
