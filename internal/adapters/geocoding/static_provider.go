package geocoding

import (
	"context"
	"fmt"
	"shipping-cost-service/internal/domain"
	"strings"
	"sync"
)

// StaticProvider answers from in-memory tables. It backs tests and offline
// runs of the CLI.
type StaticProvider struct {
	name string

	mu         sync.Mutex
	candidates map[string][]domain.Candidate
	routes     map[string]domain.Route
	err        error
	calls      int
}

func NewStaticProvider(name string) *StaticProvider {
	return &StaticProvider{
		name:       name,
		candidates: map[string][]domain.Candidate{},
		routes:     map[string]domain.Route{},
	}
}

func (p *StaticProvider) WithCandidates(address string, cs ...domain.Candidate) *StaticProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.candidates[staticKey(address)] = cs
	return p
}

func (p *StaticProvider) WithRoute(origin, destination domain.Coordinates, r domain.Route) *StaticProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[routeKey(origin, destination)] = r
	return p
}

// Failing makes every call return err.
func (p *StaticProvider) Failing(err error) *StaticProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// Calls reports how many Geocode and RouteDistance calls were made.
func (p *StaticProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *StaticProvider) Name() string { return p.name }

func (p *StaticProvider) Geocode(_ context.Context, address string, limit int) ([]domain.Candidate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if p.err != nil {
		return nil, p.err
	}

	cs := p.candidates[staticKey(address)]
	if limit > 0 && len(cs) > limit {
		cs = cs[:limit]
	}
	return append([]domain.Candidate(nil), cs...), nil
}

func (p *StaticProvider) RouteDistance(_ context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if p.err != nil {
		return domain.Route{}, p.err
	}

	r, ok := p.routes[routeKey(origin, destination)]
	if !ok {
		return domain.Route{}, fmt.Errorf("%w: %s has no route", domain.ErrProviderUnavailable, p.name)
	}
	return r, nil
}

func staticKey(address string) string {
	return strings.ToLower(normalize(address))
}

func routeKey(a, b domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", a.Lat, a.Lon, b.Lat, b.Lon)
}
