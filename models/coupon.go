package models

import "time"

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon applicability.
const (
	AppliesAll        = "all"
	AppliesIndividual = "individual"
	AppliesGroup      = "group"
)

// CouponUsage is one entry in the redemption ledger.
type CouponUsage struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	UsedAt    time.Time `bson:"used_at" json:"used_at"`
}

// Coupon is a discount code for ride or event bookings.
type Coupon struct {
	ID             string        `bson:"id" json:"id"`
	Code           string        `bson:"code" json:"code"`
	DiscountType   string        `bson:"discount_type" json:"discount_type"`
	DiscountValue  float64       `bson:"discount_value" json:"discount_value"`
	MaxDiscount    float64       `bson:"max_discount,omitempty" json:"max_discount,omitempty"`
	MinOrderAmount float64       `bson:"min_order_amount,omitempty" json:"min_order_amount,omitempty"`
	AppliesTo      string        `bson:"applies_to" json:"applies_to"`
	MinGroupSize   int           `bson:"min_group_size,omitempty" json:"min_group_size,omitempty"`
	MaxGroupSize   int           `bson:"max_group_size,omitempty" json:"max_group_size,omitempty"`
	ExpiresAt      time.Time     `bson:"expires_at" json:"expires_at"`
	UsageLimit     int           `bson:"usage_limit" json:"usage_limit"`
	UsedCount      int           `bson:"used_count" json:"used_count"`
	UsedBy         []CouponUsage `bson:"used_by,omitempty" json:"used_by,omitempty"`
	IsActive       bool          `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}
