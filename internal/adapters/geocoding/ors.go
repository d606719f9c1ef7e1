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
)

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

type orsMatrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
	Units        string      `json:"units"`
}

type orsMatrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// ORSProvider geocodes and routes through OpenRouteService.
// The provider is safe for concurrent use.
type ORSProvider struct {
	client  *client
	apiKey  string
	baseURL string
	profile string
}

func NewORSProvider(apiKey string, timeout time.Duration) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSProvider{
		client:  newClient(timeout, nil, ""),
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}, nil
}

// WithBaseURL points the provider at another host (self-hosted ORS or tests).
func (o *ORSProvider) WithBaseURL(baseURL string) *ORSProvider {
	o.baseURL = baseURL
	return o
}

func (o *ORSProvider) Name() string { return string(domain.ProviderORS) }

func (o *ORSProvider) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", o.apiKey)
	return h
}

// Geocode resolves address using /geocode/search.
func (o *ORSProvider) Geocode(
	ctx context.Context,
	address string,
	limit int,
) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	q := url.Values{}
	q.Set("text", normalize(address))
	q.Set("size", strconv.Itoa(limit))

	var decoded orsGeocodeResponse
	if err := o.client.call(ctx, http.MethodGet, o.baseURL+"/geocode/search", q, o.header(), nil, &decoded); err != nil {
		return nil, fmt.Errorf("ors geocode %q: %w", address, err)
	}

	out := make([]domain.Candidate, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		coords := f.Geometry.Coordinates
		if len(coords) != 2 {
			continue
		}
		c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}
		if !c.Valid() {
			continue
		}
		out = append(out, domain.Candidate{Coordinates: c, FormattedAddress: f.Properties.Label})
	}

	return out, nil
}

// RouteDistance asks the matrix endpoint for a single origin/destination cell.
func (o *ORSProvider) RouteDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "ors.RouteDistance")(&err)

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	body := orsMatrixRequest{
		Locations:    [][]float64{origin.CoordsToList(), destination.CoordsToList()},
		Destinations: []int{1},
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
		Units:        "m",
	}

	var mr orsMatrixResponse
	if err := o.client.call(ctx, http.MethodPost, endpoint, nil, o.header(), body, &mr); err != nil {
		return domain.Route{}, fmt.Errorf("ors matrix request: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 ||
		len(mr.Distances[0]) != 1 || len(mr.Durations[0]) != 1 {
		return domain.Route{}, fmt.Errorf(
			"%w: ors matrix: expected 1x1 result; got distances=%d durations=%d",
			domain.ErrProviderUnavailable, len(mr.Distances), len(mr.Durations),
		)
	}

	meters, seconds := mr.Distances[0][0], mr.Durations[0][0]
	if meters == nil || seconds == nil {
		return domain.Route{}, fmt.Errorf("%w: ors matrix returned no route", domain.ErrProviderUnavailable)
	}

	return domain.Route{Meters: *meters, DurationSeconds: *seconds}, nil
}
