package couponRepo

import (
	"context"
	"errors"

	"motoclub/models"
)

var (
	// ErrNotFound is returned when no coupon matches the query.
	ErrNotFound = errors.New("coupon not found")
	// ErrUsageExhausted is returned when a redemption would exceed the
	// usage limit.
	ErrUsageExhausted = errors.New("coupon usage limit reached")
)

// CouponRepository defines persistence operations for coupons.
type CouponRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Update(ctx context.Context, c *models.Coupon) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Coupon, error)
	// Redeem appends a ledger entry and increments used_count, guarded by
	// a used_count < usage_limit predicate in the update filter.
	Redeem(ctx context.Context, code string, usage models.CouponUsage) error
}
