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
	"strings"
	"time"
)

type mapyGeocodeResponse struct {
	Items []struct {
		Name     string `json:"name"`
		Location string `json:"location"`
		Position *struct {
			Lon *float64 `json:"lon"`
			Lat *float64 `json:"lat"`
		} `json:"position"`
	} `json:"items"`
}

type mapyRouteResponse struct {
	Length   *float64 `json:"length"`
	Duration *float64 `json:"duration"`
}

// MapyProvider geocodes and routes through the Mapy.cz REST API.
type MapyProvider struct {
	client  *client
	apiKey  string
	baseURL string
	lang    string
}

func NewMapyProvider(apiKey string, timeout time.Duration) (*MapyProvider, error) {
	if apiKey == "" {
		return nil, errors.New("Mapy.cz api key is empty")
	}

	return &MapyProvider{
		client:  newClient(timeout, nil, ""),
		apiKey:  apiKey,
		baseURL: "https://api.mapy.cz",
		lang:    "cs",
	}, nil
}

func (m *MapyProvider) WithBaseURL(baseURL string) *MapyProvider {
	m.baseURL = baseURL
	return m
}

func (m *MapyProvider) Name() string { return string(domain.ProviderMapy) }

func (m *MapyProvider) Geocode(
	ctx context.Context,
	address string,
	limit int,
) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "mapy.Geocode")(&err)

	q := url.Values{}
	q.Set("query", normalize(address))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("lang", m.lang)
	q.Set("apikey", m.apiKey)

	var decoded mapyGeocodeResponse
	if err := m.client.call(ctx, http.MethodGet, m.baseURL+"/v1/geocode", q, nil, nil, &decoded); err != nil {
		return nil, fmt.Errorf("mapy geocode %q: %w", address, err)
	}

	out := make([]domain.Candidate, 0, len(decoded.Items))
	for _, it := range decoded.Items {
		if it.Position == nil || it.Position.Lat == nil || it.Position.Lon == nil {
			continue
		}
		c := domain.Coordinates{Lat: *it.Position.Lat, Lon: *it.Position.Lon}
		if !c.Valid() {
			continue
		}

		label := it.Name
		if loc := strings.TrimSpace(it.Location); loc != "" {
			label += ", " + loc
		}
		out = append(out, domain.Candidate{Coordinates: c, FormattedAddress: label})
	}

	return out, nil
}

func (m *MapyProvider) RouteDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "mapy.RouteDistance")(&err)

	q := url.Values{}
	q.Set("start", formatLonLat(origin))
	q.Set("end", formatLonLat(destination))
	q.Set("routeType", "car_fast")
	q.Set("apikey", m.apiKey)

	var decoded mapyRouteResponse
	if err := m.client.call(ctx, http.MethodGet, m.baseURL+"/v1/routing/route", q, nil, nil, &decoded); err != nil {
		return domain.Route{}, fmt.Errorf("mapy route request: %w", err)
	}

	if decoded.Length == nil || decoded.Duration == nil {
		return domain.Route{}, fmt.Errorf("%w: mapy route response missing length or duration", domain.ErrProviderUnavailable)
	}

	return domain.Route{Meters: *decoded.Length, DurationSeconds: *decoded.Duration}, nil
}

func formatLonLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 6, 64)
}
