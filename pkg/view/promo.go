package view

// PromoPrice computes the price to display after a validated promo.
// The server-computed final amount is authoritative when present;
// discount math is only a fallback for older validation payloads.
// Currency conversion happens after, on the returned amount, so a
// currency switch post-validation never double-applies the discount.
func PromoPrice(basePrice float64, discountType string, discountValue float64, finalAmount *float64) float64 {
	if finalAmount != nil {
		return *finalAmount
	}
	switch discountType {
	case "percentage":
		price := basePrice * (1 - discountValue/100)
		if price < 0 {
			return 0
		}
		return price
	case "fixed":
		price := basePrice - discountValue
		if price < 0 {
			return 0
		}
		return price
	default:
		return basePrice
	}
}
