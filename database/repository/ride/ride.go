package rideRepo

import (
	"context"
	"errors"
	"time"

	"motoclub/models"
)

var (
	// ErrNotFound is returned when no ride matches the query.
	ErrNotFound = errors.New("ride not found")
	// ErrCapacityFull is returned when a seat reservation cannot fit.
	ErrCapacityFull = errors.New("ride capacity reached")
	// ErrAlreadyMigrated is returned when a migration targets an inactive ride.
	ErrAlreadyMigrated = errors.New("ride already migrated")
)

// RideRepository defines persistence operations for upcoming rides and
// their archived counterparts.
type RideRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, ride *models.UpcomingRide) error
	GetByID(ctx context.Context, id string) (*models.UpcomingRide, error)
	GetBySlug(ctx context.Context, slug string) (*models.UpcomingRide, error)
	Update(ctx context.Context, ride *models.UpcomingRide) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]models.UpcomingRide, error)

	GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error)
	ReserveSeats(ctx context.Context, id string, seats int) error
	ReleaseSeats(ctx context.Context, id string, seats int) error

	// FindDueForMigration returns active rides whose end time (or start
	// time, when no end time is set) is before now.
	FindDueForMigration(ctx context.Context, now time.Time) ([]models.UpcomingRide, error)
	// MarkMigrated flips the ride inactive and records the completed-ride
	// back-reference. Fails with ErrAlreadyMigrated if the ride is no
	// longer active.
	MarkMigrated(ctx context.Context, rideID, completedID string) error

	InsertCompleted(ctx context.Context, cr *models.CompletedRide) error
	ListCompleted(ctx context.Context) ([]models.CompletedRide, error)
	GetCompletedByID(ctx context.Context, id string) (*models.CompletedRide, error)
}
