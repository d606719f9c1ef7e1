package domain

// Store is an origin location goods are shipped from.
// Coordinates is nil until the address has been geocoded.
type Store struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Active      bool         `json:"active"`
}
