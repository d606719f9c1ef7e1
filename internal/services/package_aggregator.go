package services

import "shipping-cost-service/internal/domain"

// Aggregate summarizes line items into package attributes. Weight and height
// are summed per unit (stacked); length and width are maxima. Lines with a
// non-positive quantity are ignored; negative measurements count as zero.
func Aggregate(items []domain.LineItem) domain.PackageAttributes {
	pkg := domain.PackageAttributes{
		ProductCategoryIDs: domain.NewIDSet(),
		ShippingClassIDs:   domain.NewIDSet(),
	}

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		qty := float64(it.Quantity)

		pkg.TotalWeightKg += nonNegative(it.WeightKg) * qty
		pkg.TotalHeightCm += nonNegative(it.HeightCm) * qty
		pkg.MaxLengthCm = max(pkg.MaxLengthCm, nonNegative(it.LengthCm))
		pkg.MaxWidthCm = max(pkg.MaxWidthCm, nonNegative(it.WidthCm))
		pkg.OrderValue += it.LineTotal

		for _, id := range it.CategoryIDs {
			pkg.ProductCategoryIDs.Add(id)
		}
		if it.ShippingClassID > 0 {
			pkg.ShippingClassIDs.Add(it.ShippingClassID)
		}
	}

	return pkg
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
