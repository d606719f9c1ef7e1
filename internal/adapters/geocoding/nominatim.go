package geocoding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"shipping-cost-service/internal/domain"
	"shipping-cost-service/internal/platform/obs"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimProvider geocodes through OpenStreetMap Nominatim. It needs no
// API key but is limited to one request per second and has no routing.
type NominatimProvider struct {
	client  *client
	baseURL string
	email   string
}

func NewNominatimProvider(userAgent, email string, timeout time.Duration) (*NominatimProvider, error) {
	if userAgent == "" {
		return nil, errors.New("nominatim requires a user agent")
	}

	return &NominatimProvider{
		client:  newClient(timeout, rate.NewLimiter(rate.Every(time.Second), 1), userAgent),
		baseURL: "https://nominatim.openstreetmap.org",
		email:   email,
	}, nil
}

func (n *NominatimProvider) WithBaseURL(baseURL string) *NominatimProvider {
	n.baseURL = baseURL
	return n
}

// WithRateLimit replaces the request throttle.
func (n *NominatimProvider) WithRateLimit(limit rate.Limit, burst int) *NominatimProvider {
	n.client.limiter = rate.NewLimiter(limit, burst)
	return n
}

func (n *NominatimProvider) Name() string { return NameNominatim }

func (n *NominatimProvider) Geocode(
	ctx context.Context,
	address string,
	limit int,
) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	q := url.Values{}
	q.Set("q", normalize(address))
	q.Set("format", "jsonv2")
	q.Set("limit", strconv.Itoa(limit))
	if n.email != "" {
		q.Set("email", n.email)
	}

	var places []nominatimPlace
	if err := n.client.call(ctx, http.MethodGet, n.baseURL+"/search", q, nil, nil, &places); err != nil {
		return nil, fmt.Errorf("nominatim search %q: %w", address, err)
	}

	out := make([]domain.Candidate, 0, len(places))
	for _, p := range places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lon, lonErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		c := domain.Coordinates{Lat: lat, Lon: lon}
		if !c.Valid() {
			continue
		}
		out = append(out, domain.Candidate{Coordinates: c, FormattedAddress: p.DisplayName})
	}

	return out, nil
}
