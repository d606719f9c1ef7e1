package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"shipping-cost-service/internal/api/dto"
	"shipping-cost-service/internal/domain"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

type fakeResolver struct {
	res domain.GeocodeResult
	err error
}

func (f fakeResolver) Resolve(context.Context, string) (domain.GeocodeResult, error) {
	return f.res, f.err
}

type fakeCalculator struct {
	res domain.DistanceResult
	err error
}

func (f fakeCalculator) Distance(context.Context, string, string) (domain.DistanceResult, error) {
	return f.res, f.err
}

type fakeQuoter struct {
	quote domain.Quote
	rates []domain.ComputedRate
	err   error

	gotOrder domain.OrderSnapshot
}

func (f *fakeQuoter) Quote(_ context.Context, order domain.OrderSnapshot) (domain.Quote, error) {
	f.gotOrder = order
	return f.quote, f.err
}

func (f *fakeQuoter) Rates(_ context.Context, km float64, items []domain.LineItem) ([]domain.ComputedRate, domain.PackageAttributes, error) {
	var total float64
	for _, it := range items {
		total += it.LineTotal
	}
	return f.rates, domain.PackageAttributes{OrderValue: total}, f.err
}

func (f *fakeQuoter) Fallback(km float64) domain.ComputedRate {
	return domain.ComputedRate{Label: "Flat rate", Cost: 99, DistanceKm: km, Breakdown: domain.RateBreakdown{BaseRate: 99}}
}

func newTestRouter(d Deps) http.Handler {
	if d.Resolver == nil {
		d.Resolver = fakeResolver{}
	}
	if d.Calculator == nil {
		d.Calculator = fakeCalculator{}
	}
	if d.Quoter == nil {
		d.Quoter = &fakeQuoter{}
	}
	return NewRouter(d)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter(Deps{})

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("missing request id header")
	}

	rec = do(t, h, http.MethodPost, "/health", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health status = %d, want 405", rec.Code)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter(Deps{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestGeocode(t *testing.T) {
	ok := fakeResolver{res: domain.GeocodeResult{
		Coordinates:      domain.Coordinates{Lat: 49.1951, Lon: 16.6068},
		FormattedAddress: "Brno, Czechia",
		Provider:         "ors",
	}}

	tests := []struct {
		name     string
		resolver fakeResolver
		target   string
		status   int
	}{
		{"missing address", ok, "/geocode", http.StatusBadRequest},
		{"resolved", ok, "/geocode?address=Brno", http.StatusOK},
		{"not found", fakeResolver{err: fmt.Errorf("resolve: %w", domain.ErrNoMatchWithinTolerance)}, "/geocode?address=Atlantis", http.StatusUnprocessableEntity},
		{"internal", fakeResolver{err: errors.New("ors said: secret quota detail")}, "/geocode?address=Brno", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestRouter(Deps{Resolver: tt.resolver}), http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "secret") {
				t.Fatalf("provider error leaked: %s", rec.Body.String())
			}
		})
	}

	rec := do(t, newTestRouter(Deps{Resolver: ok}), http.MethodGet, "/geocode?address=Brno", "")
	var res dto.GeocodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Lat != 49.1951 || res.Lon != 16.6068 || res.FormattedAddress != "Brno, Czechia" {
		t.Fatalf("response = %+v", res)
	}
}

func TestDistance(t *testing.T) {
	calc := fakeCalculator{res: domain.DistanceResult{Kilometers: 184.3, Provider: domain.ProviderGreatCircle}}
	h := newTestRouter(Deps{Calculator: calc})

	rec := do(t, h, http.MethodGet, "/distance?origin=Prague", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/distance?origin=Prague&destination=Brno", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "duration_seconds") {
		t.Fatalf("great-circle response should omit duration: %s", rec.Body.String())
	}

	failing := newTestRouter(Deps{Calculator: fakeCalculator{err: fmt.Errorf("x: %w", domain.ErrResolutionFailure)}})
	rec = do(t, failing, http.MethodGet, "/distance?origin=Prague&destination=Atlantis", "")
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "distance could not be determined") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestQuote(t *testing.T) {
	q := &fakeQuoter{quote: domain.Quote{
		Store:    domain.Store{ID: 2, Name: "Store B", Address: "Masarykova 1, Brno"},
		Distance: domain.DistanceResult{Kilometers: 1.2, Provider: domain.ProviderGreatCircle},
		Package:  domain.PackageAttributes{OrderValue: 6000, ProductCategoryIDs: domain.NewIDSet(14, 12)},
		Rates:    []domain.ComputedRate{{RuleID: 2, Label: "Free", Cost: 0}},
		Selected: domain.ComputedRate{RuleID: 2, Label: "Free", Cost: 0},
	}}
	h := newTestRouter(Deps{Quoter: q})

	body := `{"destination":" Brno ","items":[{"product_id":1,"quantity":3,"weight_kg":3,"line_total":6000,"category_ids":[12,14]}]}`
	rec := do(t, h, http.MethodPost, "/quotes", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	if q.gotOrder.Destination != "Brno" || len(q.gotOrder.Items) != 1 || q.gotOrder.Items[0].Quantity != 3 {
		t.Fatalf("order = %+v", q.gotOrder)
	}

	var res dto.QuoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Store.ID != 2 || res.Selected.RuleID != 2 || res.Fallback {
		t.Fatalf("response = %+v", res)
	}
	if !strings.Contains(rec.Body.String(), `"product_category_ids":[12,14]`) {
		t.Fatalf("category ids should serialize as a sorted list: %s", rec.Body.String())
	}
}

func TestQuoteBadRequests(t *testing.T) {
	h := newTestRouter(Deps{Quoter: &fakeQuoter{}})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"destination":`},
		{"unknown field", `{"destination":"Brno","coupon":"X"}`},
		{"two objects", `{"destination":"Brno"}{"destination":"Brno"}`},
		{"missing destination", `{"items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/quotes", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestQuoteServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", fmt.Errorf("q: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{"unresolvable", fmt.Errorf("q: %w", domain.ErrResolutionFailure), http.StatusUnprocessableEntity},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(Deps{Quoter: &fakeQuoter{err: tt.err}})
			rec := do(t, h, http.MethodPost, "/quotes", `{"destination":"Brno"}`)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if strings.Contains(rec.Body.String(), "db down") {
				t.Fatalf("internal error leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestRates(t *testing.T) {
	q := &fakeQuoter{rates: []domain.ComputedRate{{RuleID: 1, Label: "Local", Cost: 186, DistanceKm: 50, Breakdown: domain.RateBreakdown{BaseRate: 186}}}}
	h := newTestRouter(Deps{Quoter: q})

	rec := do(t, h, http.MethodPost, "/rates", `{"items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing distance status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/rates", `{"distance_km":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative distance status = %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/rates", `{"distance_km":50,"items":[{"quantity":1,"line_total":100}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var res dto.RatesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Selected.Cost != 186 || res.Fallback || res.Package.OrderValue != 100 {
		t.Fatalf("response = %+v", res)
	}

	empty := newTestRouter(Deps{Quoter: &fakeQuoter{}})
	rec = do(t, empty, http.MethodPost, "/rates", `{"distance_km":0}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Fallback || res.Selected.Cost != 99 || len(res.Rates) != 0 {
		t.Fatalf("fallback response = %+v", res)
	}
}
