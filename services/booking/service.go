package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "motoclub/database/repository/booking"
	eventRepo "motoclub/database/repository/event"
	rideRepo "motoclub/database/repository/ride"
	"motoclub/models"
	"motoclub/services/coupon"
	"motoclub/services/notification"
	"motoclub/services/payment"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultBookingService drives the booking lifecycle for every offering
// kind through the single transition table.
type DefaultBookingService struct {
	Repo              bookingRepo.BookingRepository
	Offerings         map[models.OfferingKind]OfferingRepo
	Gateway           payment.Gateway
	Coupons           coupon.Service
	Notifier          notification.Dispatcher
	Logger            *zap.Logger
	CancelCutoffHours int
}

func (s *DefaultBookingService) offeringRepo(kind models.OfferingKind) (OfferingRepo, error) {
	repo, ok := s.Offerings[kind]
	if !ok {
		return nil, fmt.Errorf("unknown offering kind %q", kind)
	}
	return repo, nil
}

// CreateOrder validates the offering, rejects duplicates, creates a
// gateway order and persists the booking in "created" status.
func (s *DefaultBookingService) CreateOrder(ctx context.Context, kind models.OfferingKind, offeringID string, req CreateOrderRequest) (*OrderResponse, error) {
	repo, err := s.offeringRepo(kind)
	if err != nil {
		return nil, err
	}
	info, err := repo.GetForBooking(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !info.IsActive || now.After(info.StartTime) {
		return nil, ErrOfferingClosed
	}
	if !info.RegistrationCutoff.IsZero() && now.After(info.RegistrationCutoff) {
		return nil, ErrOfferingClosed
	}

	seats := 1
	if req.BookingType == models.BookingGroup {
		if req.GroupSize < 2 {
			return nil, fmt.Errorf("group bookings need at least 2 members")
		}
		seats = req.GroupSize
	}
	// Early rejection on a stale read; the authoritative guard is the
	// conditional seat reservation at payment time.
	if info.SeatsLeft() < seats {
		return nil, ErrFullyBooked
	}

	existing, err := s.Repo.FindActiveByUserAndOffering(ctx, req.UserID, offeringID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateBooking
	}

	amount := info.Price * float64(seats)
	var discount float64
	if req.CouponCode != "" {
		_, discount, err = s.Coupons.Apply(ctx, req.CouponCode, amount, seats, req.BookingType)
		if err != nil {
			return nil, err
		}
	}
	payable := amount - discount

	bookingID := uuid.New().String()
	order, err := s.Gateway.CreateOrder(payable, "INR", bookingID, map[string]interface{}{
		"offering_id": offeringID,
		"kind":        string(kind),
	})
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:           bookingID,
		OfferingKind: kind,
		OfferingID:   offeringID,
		UserID:       req.UserID,
		Attendee:     req.Attendee,
		BookingType:  req.BookingType,
		Seats:        seats,
		Amount:       payable,
		Discount:     discount,
		CouponCode:   req.CouponCode,
		Payment: models.Payment{
			OrderID:  order.OrderID,
			Amount:   payable,
			Currency: order.Currency,
		},
		Status:    models.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		return s.Repo.Create(sc, b)
	}); err != nil {
		return nil, err
	}

	s.Logger.Info("booking order created",
		zap.String("booking_id", b.ID),
		zap.String("order_id", order.OrderID),
		zap.String("offering_id", offeringID),
		zap.Float64("amount", payable),
	)
	return &OrderResponse{
		BookingID: b.ID,
		OrderID:   order.OrderID,
		Amount:    payable,
		Currency:  order.Currency,
		KeyID:     order.KeyID,
	}, nil
}

// VerifyPayment validates the gateway signature and flips the booking to
// paid, reserving seats in the same transaction. A replay for an already
// paid booking with the same payment id is a no-op success; the counter
// is never incremented twice.
func (s *DefaultBookingService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error) {
	b, err := s.Repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if b.Status == models.StatusPaid {
		if b.Payment.PaymentID == paymentID {
			return b, nil
		}
		return nil, fmt.Errorf("booking already paid with a different payment id")
	}
	// The callback only ever collects money for a pending order. A
	// cancelled or refunded booking can be reinstated solely through the
	// admin override; a replayed signature must not resurrect it.
	if b.Status != models.StatusCreated && b.Status != models.StatusFailed {
		return nil, ErrNotPayable
	}

	if !s.Gateway.VerifyPaymentSignature(orderID, paymentID, signature) {
		if _, err := s.applyTransition(ctx, b, models.StatusFailed, func(bk *models.Booking) {
			bk.Payment.PaymentID = paymentID
		}); err != nil {
			s.Logger.Error("failed to mark booking failed", zap.String("booking_id", b.ID), zap.Error(err))
		}
		return nil, ErrSignatureMismatch
	}

	paidAt := time.Now()
	b, err = s.applyTransition(ctx, b, models.StatusPaid, func(bk *models.Booking) {
		bk.Payment.PaymentID = paymentID
		bk.Payment.Signature = signature
		bk.PaidAt = &paidAt
	})
	if err != nil {
		return nil, err
	}

	if b.CouponCode != "" {
		if err := s.Coupons.Redeem(ctx, b.CouponCode, b.UserID, b.ID); err != nil {
			s.Logger.Error("coupon redemption failed", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	s.notifyConfirmed(ctx, b)
	return b, nil
}

// Cancel releases the booking's seats if requested early enough.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPaid {
		return nil, ErrNotCancellable
	}

	repo, err := s.offeringRepo(b.OfferingKind)
	if err != nil {
		return nil, err
	}
	info, err := repo.GetForBooking(ctx, b.OfferingID)
	if err != nil {
		return nil, err
	}
	cutoff := info.StartTime.Add(-time.Duration(s.CancelCutoffHours) * time.Hour)
	if time.Now().After(cutoff) {
		return nil, ErrCancelTooLate
	}

	cancelledAt := time.Now()
	return s.applyTransition(ctx, b, models.StatusCancelled, func(bk *models.Booking) {
		bk.CancelledAt = &cancelledAt
	})
}

// SetStatus applies an admin override through the same transition table
// as every other flow.
func (s *DefaultBookingService) SetStatus(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return s.applyTransition(ctx, b, to, func(bk *models.Booking) {
		switch to {
		case models.StatusPaid:
			bk.PaidAt = &now
		case models.StatusCancelled, models.StatusRefunded:
			bk.CancelledAt = &now
		}
	})
}

// applyTransition is the one place a booking changes status. The counter
// delta comes from the transition table; a positive delta re-runs the
// capacity guard, a negative one releases exactly the seats that were
// reserved. Booking update and counter update commit atomically.
func (s *DefaultBookingService) applyTransition(ctx context.Context, b *models.Booking, to models.BookingStatus, mutate func(*models.Booking)) (*models.Booking, error) {
	delta, err := CounterDelta(b.Status, to)
	if err != nil {
		return nil, err
	}
	repo, err := s.offeringRepo(b.OfferingKind)
	if err != nil {
		return nil, err
	}

	from := b.Status
	err = s.Repo.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		switch {
		case delta > 0:
			if err := repo.ReserveSeats(sc, b.OfferingID, delta*b.Seats); err != nil {
				if isCapacityErr(err) {
					return ErrFullyBooked
				}
				return err
			}
		case delta < 0:
			if err := repo.ReleaseSeats(sc, b.OfferingID, -delta*b.Seats); err != nil {
				return err
			}
		}
		b.Status = to
		if mutate != nil {
			mutate(b)
		}
		return s.Repo.SetStatus(sc, b)
	})
	if err != nil {
		b.Status = from
		return nil, err
	}

	s.Logger.Info("booking transition applied",
		zap.String("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Int("counter_delta", delta*b.Seats),
	)
	return b, nil
}

func isCapacityErr(err error) bool {
	return errors.Is(err, rideRepo.ErrCapacityFull) || errors.Is(err, eventRepo.ErrCapacityFull)
}

func (s *DefaultBookingService) notifyConfirmed(ctx context.Context, b *models.Booking) {
	repo, err := s.offeringRepo(b.OfferingKind)
	if err != nil {
		return
	}
	title := ""
	if info, err := repo.GetForBooking(ctx, b.OfferingID); err == nil {
		title = info.Title
	}
	s.Notifier.BookingConfirmed(*b, title)
}

func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, bookingID)
}

func (s *DefaultBookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultBookingService) ListByOffering(ctx context.Context, offeringID string) ([]models.Booking, error) {
	return s.Repo.ListByOffering(ctx, offeringID)
}
