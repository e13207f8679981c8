package coupon

import (
	"context"
	"fmt"
	"time"

	couponRepo "motoclub/database/repository/coupon"
	"motoclub/models"

	"go.uber.org/zap"
)

// Service resolves coupon codes into discounts and records redemptions.
type Service interface {
	// Apply validates the code for the given order and returns the
	// computed discount. It does not consume a use.
	Apply(ctx context.Context, code string, amount float64, groupSize int, bookingType string) (*models.Coupon, float64, error)
	// Redeem consumes one use of the coupon for a paid booking.
	Redeem(ctx context.Context, code, userID, bookingID string) error
}

// DefaultCouponService is the production implementation.
type DefaultCouponService struct {
	Repo   couponRepo.CouponRepository
	Logger *zap.Logger
}

func (s *DefaultCouponService) Apply(ctx context.Context, code string, amount float64, groupSize int, bookingType string) (*models.Coupon, float64, error) {
	c, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	if err := Validate(c, amount, groupSize, bookingType, time.Now()); err != nil {
		return nil, 0, err
	}
	discount := ComputeDiscount(amount, c, groupSize, bookingType)
	return c, discount, nil
}

func (s *DefaultCouponService) Redeem(ctx context.Context, code, userID, bookingID string) error {
	usage := models.CouponUsage{
		UserID:    userID,
		BookingID: bookingID,
		UsedAt:    time.Now(),
	}
	if err := s.Repo.Redeem(ctx, code, usage); err != nil {
		return fmt.Errorf("redeem coupon %s: %w", code, err)
	}
	s.Logger.Info("coupon redeemed",
		zap.String("code", code),
		zap.String("booking_id", bookingID),
	)
	return nil
}
