package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"motoclub/models"

	"go.uber.org/zap"
)

func openEvent(maxSeats, taken int) *fakeOfferingRepo {
	return &fakeOfferingRepo{info: models.OfferingInfo{
		ID:         "event-1",
		Kind:       models.OfferingEvent,
		Title:      "Track Day",
		Price:      500,
		StartTime:  time.Now().Add(72 * time.Hour),
		IsActive:   true,
		MaxSeats:   maxSeats,
		TakenSeats: taken,
	}}
}

func newRegTestService(off *fakeOfferingRepo) (*DefaultBookingService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	svc := &DefaultBookingService{
		Repo:      repo,
		Offerings: map[models.OfferingKind]OfferingRepo{models.OfferingEvent: off},
		Notifier:  &fakeNotifier{},
		Logger:    zap.NewNop(),
	}
	return svc, repo
}

func TestRegisterAudienceStartsPending(t *testing.T) {
	off := openEvent(50, 0)
	svc, _ := newRegTestService(off)

	reg, err := svc.RegisterAudience(context.Background(), "event-1", "Asha", "asha@example.com", "+911112223334", 2)
	if err != nil {
		t.Fatalf("RegisterAudience: %v", err)
	}
	if reg.Status != RegPending {
		t.Errorf("status = %q, want pending", reg.Status)
	}
	if off.reserved != 0 {
		t.Errorf("reserved = %d, pending registration must not consume capacity", off.reserved)
	}
}

func TestConfirmRegistrationReservesSeats(t *testing.T) {
	off := openEvent(50, 0)
	svc, _ := newRegTestService(off)
	ctx := context.Background()

	reg, err := svc.RegisterAudience(ctx, "event-1", "Asha", "asha@example.com", "+911112223334", 3)
	if err != nil {
		t.Fatalf("RegisterAudience: %v", err)
	}

	reg, err = svc.SetRegistrationStatus(ctx, reg.ID, RegConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if reg.Status != RegConfirmed {
		t.Errorf("status = %q, want confirmed", reg.Status)
	}
	if off.reserved != 3 {
		t.Errorf("reserved = %d, want 3", off.reserved)
	}

	// Cancelling the confirmed registration must give the seats back.
	if _, err := svc.SetRegistrationStatus(ctx, reg.ID, RegCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if off.released != 3 {
		t.Errorf("released = %d, want 3", off.released)
	}
}

func TestConfirmRegistrationRejectsWhenFull(t *testing.T) {
	off := openEvent(2, 0)
	svc, _ := newRegTestService(off)
	ctx := context.Background()

	// Capacity check at registration time is against current seats, so
	// both fit; only one can confirm.
	first, err := svc.RegisterAudience(ctx, "event-1", "A", "a@example.com", "+911112223334", 2)
	if err != nil {
		t.Fatalf("first RegisterAudience: %v", err)
	}
	second, err := svc.RegisterAudience(ctx, "event-1", "B", "b@example.com", "+915556667778", 2)
	if err != nil {
		t.Fatalf("second RegisterAudience: %v", err)
	}

	if _, err := svc.SetRegistrationStatus(ctx, first.ID, RegConfirmed); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	_, err = svc.SetRegistrationStatus(ctx, second.ID, RegConfirmed)
	if !errors.Is(err, ErrFullyBooked) {
		t.Fatalf("second confirm = %v, want ErrFullyBooked", err)
	}

	// The failed confirmation must leave the registration pending.
	got, err := svc.Repo.GetRegistrationByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != RegPending {
		t.Errorf("status after failed confirm = %q, want pending", got.Status)
	}
}
