package migration

import (
	"context"
	"testing"
	"time"

	bookingRepo "motoclub/database/repository/booking"
	rideRepo "motoclub/database/repository/ride"
	"motoclub/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// --- fakes ---

type fakeRideRepo struct {
	rides     map[string]*models.UpcomingRide
	completed []models.CompletedRide
}

func (f *fakeRideRepo) EnsureIndexes(ctx context.Context) error                   { return nil }
func (f *fakeRideRepo) Create(ctx context.Context, r *models.UpcomingRide) error  { return nil }
func (f *fakeRideRepo) Update(ctx context.Context, r *models.UpcomingRide) error  { return nil }
func (f *fakeRideRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeRideRepo) ReserveSeats(ctx context.Context, id string, n int) error  { return nil }
func (f *fakeRideRepo) ReleaseSeats(ctx context.Context, id string, n int) error  { return nil }
func (f *fakeRideRepo) GetBySlug(ctx context.Context, s string) (*models.UpcomingRide, error) {
	return nil, rideRepo.ErrNotFound
}
func (f *fakeRideRepo) List(ctx context.Context, a bool) ([]models.UpcomingRide, error) {
	return nil, nil
}
func (f *fakeRideRepo) GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error) {
	return nil, rideRepo.ErrNotFound
}
func (f *fakeRideRepo) ListCompleted(ctx context.Context) ([]models.CompletedRide, error) {
	return f.completed, nil
}
func (f *fakeRideRepo) GetCompletedByID(ctx context.Context, id string) (*models.CompletedRide, error) {
	return nil, rideRepo.ErrNotFound
}

func (f *fakeRideRepo) GetByID(ctx context.Context, id string) (*models.UpcomingRide, error) {
	r, ok := f.rides[id]
	if !ok {
		return nil, rideRepo.ErrNotFound
	}
	return r, nil
}

func (f *fakeRideRepo) FindDueForMigration(ctx context.Context, now time.Time) ([]models.UpcomingRide, error) {
	var due []models.UpcomingRide
	for _, r := range f.rides {
		if !r.IsActive {
			continue
		}
		end := r.EndTime
		if end.IsZero() {
			end = r.StartTime
		}
		if end.Before(now) {
			due = append(due, *r)
		}
	}
	return due, nil
}

func (f *fakeRideRepo) MarkMigrated(ctx context.Context, rideID, completedID string) error {
	r, ok := f.rides[rideID]
	if !ok || !r.IsActive {
		return rideRepo.ErrAlreadyMigrated
	}
	r.IsActive = false
	r.CompletedRideID = completedID
	return nil
}

func (f *fakeRideRepo) InsertCompleted(ctx context.Context, cr *models.CompletedRide) error {
	f.completed = append(f.completed, *cr)
	return nil
}

type fakeBookingCounter struct {
	bookingRepo.BookingRepository
	paidByOffering map[string]int64
}

func (f *fakeBookingCounter) CountByOfferingAndStatus(ctx context.Context, offeringID string, status models.BookingStatus) (int64, error) {
	if status != models.StatusPaid {
		return 0, nil
	}
	return f.paidByOffering[offeringID], nil
}

func (f *fakeBookingCounter) ExecuteTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

// --- tests ---

func TestSweepMigratesExpiredRide(t *testing.T) {
	now := time.Now()
	rides := &fakeRideRepo{rides: map[string]*models.UpcomingRide{
		"expired": {
			ID:        "expired",
			Title:     "Coastal Loop",
			StartTime: now.Add(-26 * time.Hour),
			EndTime:   now.Add(-2 * time.Hour),
			IsActive:  true,
		},
		"future": {
			ID:        "future",
			Title:     "Hill Climb",
			StartTime: now.Add(48 * time.Hour),
			EndTime:   now.Add(72 * time.Hour),
			IsActive:  true,
		},
	}}
	bookings := &fakeBookingCounter{paidByOffering: map[string]int64{"expired": 7}}
	sweeper := &Sweeper{Rides: rides, Bookings: bookings, Logger: zap.NewNop()}

	report, err := sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Checked != 1 || report.Migrated != 1 || len(report.Errors) != 0 {
		t.Fatalf("report = %+v, want 1 checked, 1 migrated, 0 errors", report)
	}
	if len(rides.completed) != 1 {
		t.Fatalf("completed rides = %d, want 1", len(rides.completed))
	}

	cr := rides.completed[0]
	if cr.SourceRideID != "expired" {
		t.Errorf("source = %q, want expired", cr.SourceRideID)
	}
	if cr.Participants != 7 {
		t.Errorf("participants = %d, want 7 (paid bookings)", cr.Participants)
	}
	src := rides.rides["expired"]
	if src.IsActive {
		t.Error("source ride still active after migration")
	}
	if src.CompletedRideID != cr.ID {
		t.Errorf("back-reference = %q, want %q", src.CompletedRideID, cr.ID)
	}
	if rides.rides["future"].IsActive != true {
		t.Error("future ride should be untouched")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Now()
	rides := &fakeRideRepo{rides: map[string]*models.UpcomingRide{
		"expired": {
			ID:        "expired",
			StartTime: now.Add(-4 * time.Hour),
			IsActive:  true,
		},
	}}
	bookings := &fakeBookingCounter{paidByOffering: map[string]int64{}}
	sweeper := &Sweeper{Rides: rides, Bookings: bookings, Logger: zap.NewNop()}
	ctx := context.Background()

	if _, err := sweeper.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	report, err := sweeper.Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Checked != 0 || report.Migrated != 0 {
		t.Errorf("second sweep report = %+v, want nothing to do", report)
	}
	if len(rides.completed) != 1 {
		t.Errorf("completed rides = %d, want exactly 1", len(rides.completed))
	}
}

func TestDurationString(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{name: "no end time", end: time.Time{}, want: "1 day"},
		{name: "ninety minutes", end: base.Add(90 * time.Minute), want: "1 hour"},
		{name: "five hours", end: base.Add(5 * time.Hour), want: "5 hours"},
		{name: "one day", end: base.Add(24 * time.Hour), want: "1 day"},
		{name: "two days three hours", end: base.Add(51 * time.Hour), want: "2 days 3 hours"},
		{name: "forty minutes", end: base.Add(40 * time.Minute), want: "40 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationString(base, tt.end); got != tt.want {
				t.Errorf("DurationString() = %q, want %q", got, tt.want)
			}
		})
	}
}
