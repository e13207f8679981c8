package migration

import (
	"context"
	"fmt"
	"time"

	bookingRepo "motoclub/database/repository/booking"
	rideRepo "motoclub/database/repository/ride"
	"motoclub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RideError records a single ride that failed to migrate during a sweep.
type RideError struct {
	RideID string `json:"ride_id"`
	Err    string `json:"error"`
}

// Report summarizes one sweep run.
type Report struct {
	Checked  int         `json:"checked"`
	Migrated int         `json:"migrated"`
	Errors   []RideError `json:"errors,omitempty"`
}

// Sweeper reclassifies expired upcoming rides into completed records.
type Sweeper struct {
	Rides    rideRepo.RideRepository
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

// Run migrates every due ride. Per-ride failures are logged and
// collected; the sweep continues. A permanently failing ride stays
// active and is retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) (*Report, error) {
	now := time.Now()
	due, err := s.Rides.FindDueForMigration(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("migration sweep query: %w", err)
	}

	report := &Report{Checked: len(due)}
	for _, ride := range due {
		if err := s.migrateOne(ctx, &ride, now); err != nil {
			s.Logger.Error("ride migration failed",
				zap.String("ride_id", ride.ID),
				zap.Error(err),
			)
			report.Errors = append(report.Errors, RideError{RideID: ride.ID, Err: err.Error()})
			continue
		}
		report.Migrated++
	}

	s.Logger.Info("migration sweep finished",
		zap.Int("checked", report.Checked),
		zap.Int("migrated", report.Migrated),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// migrateOne snapshots the ride into a CompletedRide and flips the source
// inactive, atomically. The is_active guard inside MarkMigrated makes a
// concurrent sweep or manual trigger a no-op for the same ride.
func (s *Sweeper) migrateOne(ctx context.Context, ride *models.UpcomingRide, now time.Time) error {
	paid, err := s.Bookings.CountByOfferingAndStatus(ctx, ride.ID, models.StatusPaid)
	if err != nil {
		return err
	}

	cr := &models.CompletedRide{
		ID:           uuid.New().String(),
		SourceRideID: ride.ID,
		Title:        ride.Title,
		Slug:         ride.Slug,
		Route:        ride.Route,
		StartTime:    ride.StartTime,
		EndTime:      ride.EndTime,
		Duration:     DurationString(ride.StartTime, ride.EndTime),
		Participants: int(paid),
		CoverImage:   ride.CoverImage,
		MigratedAt:   now,
	}

	return s.Bookings.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.Rides.MarkMigrated(sc, ride.ID, cr.ID); err != nil {
			return err
		}
		return s.Rides.InsertCompleted(sc, cr)
	})
}

// DurationString renders the ride window as a human-readable duration.
// Rides without an end time report a single day.
func DurationString(start, end time.Time) string {
	if end.IsZero() || !end.After(start) {
		return "1 day"
	}
	d := end.Sub(start)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if days > 0 {
		out := fmt.Sprintf("%d %s", days, plural("day", days))
		if hours > 0 {
			out += fmt.Sprintf(" %d %s", hours, plural("hour", hours))
		}
		return out
	}
	if hours > 0 {
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%d %s", mins, plural("minute", mins))
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
