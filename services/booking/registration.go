package booking

import (
	"context"
	"fmt"
	"time"

	"motoclub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Audience registration statuses. They ride the same state machine as
// bookings: pending maps to created, confirmed to paid.
const (
	RegPending   models.BookingStatus = "pending"
	RegConfirmed models.BookingStatus = "confirmed"
	RegCancelled models.BookingStatus = "cancelled"
)

func regToMachine(s models.BookingStatus) (models.BookingStatus, error) {
	switch s {
	case RegPending:
		return models.StatusCreated, nil
	case RegConfirmed:
		return models.StatusPaid, nil
	case RegCancelled:
		return models.StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown registration status %q", s)
	}
}

// RegisterAudience creates a pending spectator registration for an event.
// Capacity is consumed only on confirmation.
func (s *DefaultBookingService) RegisterAudience(ctx context.Context, eventID, name, email, phone string, seats int) (*models.AudienceRegistration, error) {
	repo, err := s.offeringRepo(models.OfferingEvent)
	if err != nil {
		return nil, err
	}
	info, err := repo.GetForBooking(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if !info.IsActive || now.After(info.StartTime) {
		return nil, ErrOfferingClosed
	}
	if seats < 1 {
		seats = 1
	}
	if info.SeatsLeft() < seats {
		return nil, ErrFullyBooked
	}

	reg := &models.AudienceRegistration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Seats:     seats,
		Status:    RegPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// SetRegistrationStatus moves a registration through the shared
// transition table, adjusting the event counter symmetrically.
func (s *DefaultBookingService) SetRegistrationStatus(ctx context.Context, regID string, to models.BookingStatus) (*models.AudienceRegistration, error) {
	reg, err := s.Repo.GetRegistrationByID(ctx, regID)
	if err != nil {
		return nil, err
	}

	from, err := regToMachine(reg.Status)
	if err != nil {
		return nil, err
	}
	target, err := regToMachine(to)
	if err != nil {
		return nil, err
	}
	delta, err := CounterDelta(from, target)
	if err != nil {
		return nil, err
	}

	repo, err := s.offeringRepo(models.OfferingEvent)
	if err != nil {
		return nil, err
	}
	prev := reg.Status
	err = s.Repo.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		switch {
		case delta > 0:
			if err := repo.ReserveSeats(sc, reg.EventID, delta*reg.Seats); err != nil {
				if isCapacityErr(err) {
					return ErrFullyBooked
				}
				return err
			}
		case delta < 0:
			if err := repo.ReleaseSeats(sc, reg.EventID, -delta*reg.Seats); err != nil {
				return err
			}
		}
		reg.Status = to
		return s.Repo.UpdateRegistration(sc, reg)
	})
	if err != nil {
		reg.Status = prev
		return nil, err
	}

	s.Logger.Info("registration transition applied",
		zap.String("registration_id", reg.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(to)),
	)

	if to == RegConfirmed {
		title := ""
		if info, err := repo.GetForBooking(ctx, reg.EventID); err == nil {
			title = info.Title
		}
		s.Notifier.RegistrationConfirmed(*reg, title)
	}
	return reg, nil
}

func (s *DefaultBookingService) ListRegistrations(ctx context.Context, eventID string) ([]models.AudienceRegistration, error) {
	return s.Repo.ListRegistrationsByEvent(ctx, eventID)
}
