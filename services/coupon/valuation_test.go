package coupon

import (
	"testing"
	"time"

	"motoclub/models"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		coupon      models.Coupon
		groupSize   int
		bookingType string
		want        float64
	}{
		{
			name:        "ten percent off 1500 no cap",
			amount:      1500,
			coupon:      models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 10},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        150,
		},
		{
			name:        "percentage clamped to max discount",
			amount:      2000,
			coupon:      models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 50, MaxDiscount: 300},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        300,
		},
		{
			name:        "fixed per member multiplied by group size",
			amount:      5000,
			coupon:      models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 100},
			groupSize:   4,
			bookingType: models.BookingGroup,
			want:        400,
		},
		{
			name:        "fixed not multiplied for individual",
			amount:      1000,
			coupon:      models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 100},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        100,
		},
		{
			name:        "discount never exceeds amount",
			amount:      80,
			coupon:      models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 500},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        80,
		},
		{
			name:        "rounded to two decimals",
			amount:      999.99,
			coupon:      models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 7.5},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        75, // 74.99925 rounds up
		},
		{
			name:        "zero amount yields zero",
			amount:      0,
			coupon:      models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 10},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        0,
		},
		{
			name:        "unknown discount type yields zero",
			amount:      1000,
			coupon:      models.Coupon{DiscountType: "mystery", DiscountValue: 10},
			groupSize:   1,
			bookingType: models.BookingIndividual,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(tt.amount, &tt.coupon, tt.groupSize, tt.bookingType)
			if got != tt.want {
				t.Errorf("ComputeDiscount() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > tt.amount {
				t.Errorf("discount %v outside [0, %v]", got, tt.amount)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := models.Coupon{
		Code:          "RIDE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		AppliesTo:     models.AppliesAll,
		ExpiresAt:     now.Add(24 * time.Hour),
		UsageLimit:    100,
		UsedCount:     0,
		IsActive:      true,
	}

	tests := []struct {
		name        string
		mutate      func(c *models.Coupon)
		amount      float64
		groupSize   int
		bookingType string
		wantErr     error
	}{
		{
			name:        "valid coupon",
			mutate:      func(c *models.Coupon) {},
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     nil,
		},
		{
			name:        "inactive",
			mutate:      func(c *models.Coupon) { c.IsActive = false },
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     ErrInactive,
		},
		{
			name:        "expired",
			mutate:      func(c *models.Coupon) { c.ExpiresAt = now.Add(-time.Hour) },
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     ErrExpired,
		},
		{
			name:        "usage exhausted",
			mutate:      func(c *models.Coupon) { c.UsedCount = 100 },
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     ErrUsageLimit,
		},
		{
			name:        "group-only coupon on individual booking",
			mutate:      func(c *models.Coupon) { c.AppliesTo = models.AppliesGroup },
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     ErrNotApplicable,
		},
		{
			name:        "group below minimum size",
			mutate:      func(c *models.Coupon) { c.AppliesTo = models.AppliesGroup; c.MinGroupSize = 5 },
			amount:      5000,
			groupSize:   3,
			bookingType: models.BookingGroup,
			wantErr:     ErrGroupSize,
		},
		{
			name:        "group above maximum size",
			mutate:      func(c *models.Coupon) { c.AppliesTo = models.AppliesGroup; c.MaxGroupSize = 4 },
			amount:      5000,
			groupSize:   6,
			bookingType: models.BookingGroup,
			wantErr:     ErrGroupSize,
		},
		{
			name:        "below minimum order amount",
			mutate:      func(c *models.Coupon) { c.MinOrderAmount = 2000 },
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     ErrMinOrder,
		},
		{
			name:        "unlimited usage when limit is zero",
			mutate:      func(c *models.Coupon) { c.UsageLimit = 0; c.UsedCount = 9999 },
			amount:      1500,
			groupSize:   1,
			bookingType: models.BookingIndividual,
			wantErr:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := Validate(&c, tt.amount, tt.groupSize, tt.bookingType, now)
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
