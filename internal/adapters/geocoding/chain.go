package geocoding

import (
	"fmt"
	"shipping-cost-service/internal/config"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"strings"
)

const (
	NameORS       = "ors"
	NameMapy      = "mapy"
	NameNominatim = "nominatim"
)

var defaultOrder = []string{NameORS, NameMapy, NameNominatim}

// NewByName builds a single provider from settings.
func NewByName(name string, s config.Settings) (ports.GeocodingProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameORS:
		return NewORSProvider(s.ORSAPIKey, s.ProviderTimeout)
	case NameMapy:
		return NewMapyProvider(s.MapyAPIKey, s.ProviderTimeout)
	case NameNominatim:
		return NewNominatimProvider(s.NominatimUserAgent, s.NominatimEmail, s.ProviderTimeout)
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q", name)
	}
}

// BuildChain returns the providers in failover order: the configured primary,
// then the other keyed provider, then Nominatim. Providers that cannot be
// constructed (missing key) are skipped.
func BuildChain(s config.Settings) ([]ports.GeocodingProvider, error) {
	primary := strings.ToLower(strings.TrimSpace(s.GeocodingProvider))
	order := make([]string, 0, len(defaultOrder))
	if primary != "" {
		order = append(order, primary)
	}
	for _, name := range defaultOrder {
		if name != primary {
			order = append(order, name)
		}
	}

	chain := make([]ports.GeocodingProvider, 0, len(order))
	for _, name := range order {
		p, err := NewByName(name, s)
		if err != nil {
			obs.Logger().Warn().Err(err).Str("provider", name).Msg("geocoding provider disabled")
			continue
		}
		chain = append(chain, p)
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no geocoding provider could be configured")
	}

	return chain, nil
}
