package eventRepo

import (
	"context"
	"errors"

	"motoclub/models"
)

var (
	// ErrNotFound is returned when no event matches the query.
	ErrNotFound = errors.New("event not found")
	// ErrCapacityFull is returned when a seat reservation cannot fit.
	ErrCapacityFull = errors.New("event capacity reached")
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]models.Event, error)

	// GetForBooking projects the booking-relevant fields.
	GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error)
	// ReserveSeats atomically increments the participant counter, guarded
	// by the capacity predicate in the update filter.
	ReserveSeats(ctx context.Context, id string, seats int) error
	// ReleaseSeats decrements the counter after a cancellation/refund.
	ReleaseSeats(ctx context.Context, id string, seats int) error
}
