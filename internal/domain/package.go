package domain

import (
	"slices"

	"github.com/goccy/go-json"
)

// LineItem is one order line as supplied by the cart/order snapshot.
// Missing weights and dimensions are zero.
type LineItem struct {
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	WeightKg        float64 `json:"weight_kg"`
	LengthCm        float64 `json:"length_cm"`
	WidthCm         float64 `json:"width_cm"`
	HeightCm        float64 `json:"height_cm"`
	LineTotal       float64 `json:"line_total"`
	CategoryIDs     []int   `json:"category_ids"`
	ShippingClassID int     `json:"shipping_class_id"`
}

// OrderSnapshot is the cart contents plus the customer destination.
type OrderSnapshot struct {
	Destination string
	Items       []LineItem
}

// PackageAttributes is the physical and commercial summary of an order.
//
// Weight and height are quantity-weighted sums (items are assumed to be
// stacked); length and width are maxima over line items.
type PackageAttributes struct {
	TotalWeightKg      float64 `json:"total_weight_kg"`
	MaxLengthCm        float64 `json:"max_length_cm"`
	MaxWidthCm         float64 `json:"max_width_cm"`
	TotalHeightCm      float64 `json:"total_height_cm"`
	OrderValue         float64 `json:"order_value"`
	ProductCategoryIDs IDSet   `json:"product_category_ids"`
	ShippingClassIDs   IDSet   `json:"shipping_class_ids"`
}

// IDSet is a set of integer ids.
type IDSet map[int]struct{}

func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id int) { s[id] = struct{}{} }

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// ContainsAny reports whether at least one of ids is in the set.
func (s IDSet) ContainsAny(ids []int) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(b []byte) error {
	var ids []int
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
