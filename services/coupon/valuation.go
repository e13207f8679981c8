package coupon

import (
	"math"

	"motoclub/models"
)

// ComputeDiscount returns the discount amount for a coupon applied to an
// order. Percentage coupons take a share of the amount; fixed coupons are
// per member, so the value is multiplied by the group size for group
// bookings. The result is clamped to the coupon cap and to the order
// amount, and rounded to 2 decimals.
func ComputeDiscount(amount float64, c *models.Coupon, groupSize int, bookingType string) float64 {
	if amount <= 0 {
		return 0
	}

	var discount float64
	switch c.DiscountType {
	case models.DiscountPercentage:
		discount = amount * c.DiscountValue / 100
	case models.DiscountFixed:
		discount = c.DiscountValue
		if bookingType == models.BookingGroup && groupSize > 1 {
			discount *= float64(groupSize)
		}
	default:
		return 0
	}

	if c.MaxDiscount > 0 && discount > c.MaxDiscount {
		discount = c.MaxDiscount
	}
	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		discount = 0
	}
	return math.Round(discount*100) / 100
}
