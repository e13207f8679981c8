package bookingRepo

import (
	"context"
	"errors"

	"motoclub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no booking matches the query.
	ErrNotFound = errors.New("booking not found")
)

// BookingRepository defines persistence operations for bookings and
// audience registrations.
type BookingRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	// FindActiveByUserAndOffering looks for a created or paid booking by
	// the same user for the same offering.
	FindActiveByUserAndOffering(ctx context.Context, userID, offeringID string) (*models.Booking, error)
	SetStatus(ctx context.Context, b *models.Booking) error
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByOffering(ctx context.Context, offeringID string) ([]models.Booking, error)
	CountByOfferingAndStatus(ctx context.Context, offeringID string, status models.BookingStatus) (int64, error)

	CreateRegistration(ctx context.Context, reg *models.AudienceRegistration) error
	GetRegistrationByID(ctx context.Context, id string) (*models.AudienceRegistration, error)
	UpdateRegistration(ctx context.Context, reg *models.AudienceRegistration) error
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]models.AudienceRegistration, error)

	// ExecuteTransaction runs fn inside a MongoDB multi-document
	// transaction; any error aborts it.
	ExecuteTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error
}
