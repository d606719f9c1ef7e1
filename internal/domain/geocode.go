package domain

// GeocodeResult is a resolved address. It is cached keyed on the
// normalized input address.
type GeocodeResult struct {
	Coordinates      Coordinates `json:"coordinates"`
	FormattedAddress string      `json:"formatted_address"`
	OriginalAddress  string      `json:"original_address"`
	Provider         string      `json:"provider,omitempty"`
}

// Candidate is one geocoding match returned by a provider.
type Candidate struct {
	Coordinates      Coordinates
	FormattedAddress string
}
