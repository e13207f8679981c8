package coupon

import (
	"errors"
	"time"

	"motoclub/models"
)

// Validation errors, shared by every call site (ride bookings, event
// bookings, admin previews).
var (
	ErrInactive      = errors.New("coupon is not active")
	ErrExpired       = errors.New("coupon has expired")
	ErrUsageLimit    = errors.New("coupon usage limit reached")
	ErrNotApplicable = errors.New("coupon does not apply to this booking type")
	ErrGroupSize     = errors.New("group size outside coupon bounds")
	ErrMinOrder      = errors.New("order amount below coupon minimum")
)

// Validate checks a coupon against a booking in one pass. Every rule is
// applied here regardless of the offering kind, so ride and event flows
// cannot diverge.
func Validate(c *models.Coupon, amount float64, groupSize int, bookingType string, now time.Time) error {
	if !c.IsActive {
		return ErrInactive
	}
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return ErrExpired
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return ErrUsageLimit
	}
	switch c.AppliesTo {
	case models.AppliesAll, "":
	case models.AppliesIndividual:
		if bookingType != models.BookingIndividual {
			return ErrNotApplicable
		}
	case models.AppliesGroup:
		if bookingType != models.BookingGroup {
			return ErrNotApplicable
		}
	default:
		return ErrNotApplicable
	}
	if bookingType == models.BookingGroup {
		if c.MinGroupSize > 0 && groupSize < c.MinGroupSize {
			return ErrGroupSize
		}
		if c.MaxGroupSize > 0 && groupSize > c.MaxGroupSize {
			return ErrGroupSize
		}
	}
	if c.MinOrderAmount > 0 && amount < c.MinOrderAmount {
		return ErrMinOrder
	}
	return nil
}
