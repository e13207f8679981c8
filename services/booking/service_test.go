package booking

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	bookingRepo "motoclub/database/repository/booking"
	rideRepo "motoclub/database/repository/ride"
	"motoclub/models"
	"motoclub/services/payment"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testSecret = "test_gateway_secret"

// --- fakes ---

type fakeOfferingRepo struct {
	info     models.OfferingInfo
	reserved int
	released int
}

func (f *fakeOfferingRepo) GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error) {
	info := f.info
	info.TakenSeats += f.reserved - f.released
	return &info, nil
}

func (f *fakeOfferingRepo) ReserveSeats(ctx context.Context, id string, seats int) error {
	if f.info.TakenSeats+f.reserved-f.released+seats > f.info.MaxSeats {
		return rideRepo.ErrCapacityFull
	}
	f.reserved += seats
	return nil
}

func (f *fakeOfferingRepo) ReleaseSeats(ctx context.Context, id string, seats int) error {
	f.released += seats
	return nil
}

type fakeBookingRepo struct {
	byID map[string]*models.Booking
	regs map[string]*models.AudienceRegistration
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID: make(map[string]*models.Booking),
		regs: make(map[string]*models.AudienceRegistration),
	}
}

func (f *fakeBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	for _, b := range f.byID {
		if b.Payment.OrderID == orderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) FindActiveByUserAndOffering(ctx context.Context, userID, offeringID string) (*models.Booking, error) {
	for _, b := range f.byID {
		if b.UserID == userID && b.OfferingID == offeringID &&
			(b.Status == models.StatusCreated || b.Status == models.StatusPaid) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) SetStatus(ctx context.Context, b *models.Booking) error {
	if _, ok := f.byID[b.ID]; !ok {
		return bookingRepo.ErrNotFound
	}
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByOffering(ctx context.Context, offeringID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) CountByOfferingAndStatus(ctx context.Context, offeringID string, status models.BookingStatus) (int64, error) {
	var n int64
	for _, b := range f.byID {
		if b.OfferingID == offeringID && b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CreateRegistration(ctx context.Context, reg *models.AudienceRegistration) error {
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetRegistrationByID(ctx context.Context, id string) (*models.AudienceRegistration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateRegistration(ctx context.Context, reg *models.AudienceRegistration) error {
	if _, ok := f.regs[reg.ID]; !ok {
		return bookingRepo.ErrNotFound
	}
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]models.AudienceRegistration, error) {
	var out []models.AudienceRegistration
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ExecuteTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type fakeGateway struct {
	orders int
}

func (g *fakeGateway) CreateOrder(amount float64, currency, receipt string, notes map[string]interface{}) (*payment.GatewayOrder, error) {
	g.orders++
	return &payment.GatewayOrder{
		OrderID:  "order_" + receipt,
		Amount:   amount,
		Currency: currency,
		KeyID:    "rzp_test_key",
	}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return payment.VerifySignature(orderID, paymentID, signature, testSecret)
}

type fakeCoupons struct {
	discount float64
	redeems  int
}

func (c *fakeCoupons) Apply(ctx context.Context, code string, amount float64, groupSize int, bookingType string) (*models.Coupon, float64, error) {
	return &models.Coupon{Code: code}, c.discount, nil
}

func (c *fakeCoupons) Redeem(ctx context.Context, code, userID, bookingID string) error {
	c.redeems++
	return nil
}

type fakeNotifier struct {
	confirmed int
}

func (n *fakeNotifier) BookingConfirmed(b models.Booking, offeringTitle string) {
	n.confirmed++
}

func (n *fakeNotifier) RegistrationConfirmed(reg models.AudienceRegistration, eventTitle string) {
	n.confirmed++
}

// --- helpers ---

func newTestService(off *fakeOfferingRepo) (*DefaultBookingService, *fakeBookingRepo, *fakeGateway, *fakeNotifier) {
	repo := newFakeBookingRepo()
	gw := &fakeGateway{}
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Repo:              repo,
		Offerings:         map[models.OfferingKind]OfferingRepo{models.OfferingRide: off},
		Gateway:           gw,
		Coupons:           &fakeCoupons{},
		Notifier:          notifier,
		Logger:            zap.NewNop(),
		CancelCutoffHours: 24,
	}
	return svc, repo, gw, notifier
}

func openRide(maxSeats, taken int) *fakeOfferingRepo {
	return &fakeOfferingRepo{info: models.OfferingInfo{
		ID:                 "ride-1",
		Kind:               models.OfferingRide,
		Title:              "Valley Run",
		Price:              1500,
		StartTime:          time.Now().Add(72 * time.Hour),
		RegistrationCutoff: time.Now().Add(48 * time.Hour),
		IsActive:           true,
		MaxSeats:           maxSeats,
		TakenSeats:         taken,
	}}
}

// signFor mirrors the gateway HMAC under the test secret.
func signFor(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// --- tests ---

func TestCreateOrderRejectsWhenFull(t *testing.T) {
	svc, _, _, _ := newTestService(openRide(20, 20))

	_, err := svc.CreateOrder(context.Background(), models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingIndividual,
	})
	if !errors.Is(err, ErrFullyBooked) {
		t.Fatalf("CreateOrder on full ride = %v, want ErrFullyBooked", err)
	}
}

func TestCreateOrderRejectsDuplicate(t *testing.T) {
	svc, _, _, _ := newTestService(openRide(20, 0))
	ctx := context.Background()
	req := CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingIndividual,
	}

	if _, err := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", req); err != nil {
		t.Fatalf("first CreateOrder: %v", err)
	}
	if _, err := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", req); !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("second CreateOrder = %v, want ErrDuplicateBooking", err)
	}
}

func TestVerifyPaymentReservesSeatsOnce(t *testing.T) {
	off := openRide(20, 0)
	svc, _, _, notifier := newTestService(off)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingGroup,
		GroupSize:   3,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	sig := signFor(resp.OrderID, "pay_1")
	b, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", sig)
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if b.Status != models.StatusPaid {
		t.Fatalf("status = %q, want paid", b.Status)
	}
	if b.PaidAt == nil {
		t.Error("PaidAt not stamped")
	}
	if off.reserved != 3 {
		t.Fatalf("reserved seats = %d, want 3", off.reserved)
	}
	if notifier.confirmed != 1 {
		t.Errorf("notifications = %d, want 1", notifier.confirmed)
	}

	// Replay of the same valid callback must be idempotent.
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", sig); err != nil {
		t.Fatalf("replayed VerifyPayment: %v", err)
	}
	if off.reserved != 3 {
		t.Errorf("reserved seats after replay = %d, want 3", off.reserved)
	}

	// A different payment id against a paid booking is rejected.
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_2", signFor(resp.OrderID, "pay_2")); err == nil {
		t.Error("expected error for conflicting payment id")
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	off := openRide(20, 0)
	svc, repo, _, _ := newTestService(off)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingIndividual,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	_, err = svc.VerifyPayment(ctx, resp.OrderID, "pay_1", "not-a-signature")
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("VerifyPayment = %v, want ErrSignatureMismatch", err)
	}
	b, _ := repo.GetByID(ctx, resp.BookingID)
	if b.Status != models.StatusFailed {
		t.Errorf("status = %q, want failed", b.Status)
	}
	if off.reserved != 0 {
		t.Errorf("reserved seats = %d, want 0", off.reserved)
	}
}

func TestCancelReleasesSeats(t *testing.T) {
	off := openRide(20, 0)
	svc, _, _, _ := newTestService(off)
	ctx := context.Background()

	resp, _ := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingGroup,
		GroupSize:   2,
	})
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", signFor(resp.OrderID, "pay_1")); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	b, err := svc.Cancel(ctx, resp.BookingID, "user-1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != models.StatusCancelled {
		t.Fatalf("status = %q, want cancelled", b.Status)
	}
	if off.released != 2 {
		t.Errorf("released seats = %d, want 2", off.released)
	}

	// Cancelling again is rejected: the booking is no longer paid.
	if _, err := svc.Cancel(ctx, resp.BookingID, "user-1"); !errors.Is(err, ErrNotCancellable) {
		t.Errorf("second Cancel = %v, want ErrNotCancellable", err)
	}
}

func TestCancelPastCutoff(t *testing.T) {
	off := openRide(20, 0)
	off.info.StartTime = time.Now().Add(2 * time.Hour) // inside the 24h window
	svc, _, _, _ := newTestService(off)
	ctx := context.Background()

	resp, _ := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingIndividual,
	})
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", signFor(resp.OrderID, "pay_1")); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	if _, err := svc.Cancel(ctx, resp.BookingID, "user-1"); !errors.Is(err, ErrCancelTooLate) {
		t.Fatalf("Cancel = %v, want ErrCancelTooLate", err)
	}
}

func TestAdminOverrideKeepsCounterSymmetric(t *testing.T) {
	off := openRide(20, 0)
	svc, _, _, _ := newTestService(off)
	ctx := context.Background()

	resp, _ := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingIndividual,
	})
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", signFor(resp.OrderID, "pay_1")); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	if _, err := svc.SetStatus(ctx, resp.BookingID, models.StatusRefunded); err != nil {
		t.Fatalf("SetStatus refunded: %v", err)
	}
	if off.released != 1 {
		t.Fatalf("released = %d, want 1", off.released)
	}

	if _, err := svc.SetStatus(ctx, resp.BookingID, models.StatusPaid); err != nil {
		t.Fatalf("SetStatus reinstate: %v", err)
	}
	if off.reserved != 2 {
		t.Fatalf("reserved = %d, want 2 (initial + reinstate)", off.reserved)
	}

	// Undefined transition goes nowhere.
	if _, err := svc.SetStatus(ctx, resp.BookingID, models.StatusCreated); err == nil {
		t.Error("expected error for undefined transition paid -> created")
	}
}

func TestVerifyPaymentRejectsAfterCancel(t *testing.T) {
	off := openRide(20, 0)
	svc, _, _, notifier := newTestService(off)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingGroup,
		GroupSize:   2,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	sig := signFor(resp.OrderID, "pay_1")
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", sig); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if _, err := svc.Cancel(ctx, resp.BookingID, "user-1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// A replayed valid callback must not reinstate the cancelled
	// booking; that edge belongs to the admin override alone.
	_, err = svc.VerifyPayment(ctx, resp.OrderID, "pay_1", sig)
	if !errors.Is(err, ErrNotPayable) {
		t.Fatalf("replayed VerifyPayment after cancel = %v, want ErrNotPayable", err)
	}

	b, err := svc.GetByID(ctx, resp.BookingID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Status != models.StatusCancelled {
		t.Errorf("status after replay = %q, want cancelled", b.Status)
	}
	if off.reserved != 2 || off.released != 2 {
		t.Errorf("seats changed by replay: reserved=%d released=%d, want 2/2", off.reserved, off.released)
	}
	if notifier.confirmed != 1 {
		t.Errorf("confirmations = %d, want 1 (replay must not re-notify)", notifier.confirmed)
	}
}

func TestVerifyPaymentRejectsRefunded(t *testing.T) {
	off := openRide(20, 0)
	svc, _, _, _ := newTestService(off)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, models.OfferingRide, "ride-1", CreateOrderRequest{
		UserID:      "user-1",
		Attendee:    models.Attendee{Name: "A", Email: "a@example.com", Phone: "+911234567890"},
		BookingType: models.BookingIndividual,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	sig := signFor(resp.OrderID, "pay_1")
	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", sig); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if _, err := svc.SetStatus(ctx, resp.BookingID, models.StatusRefunded); err != nil {
		t.Fatalf("SetStatus refunded: %v", err)
	}

	if _, err := svc.VerifyPayment(ctx, resp.OrderID, "pay_1", sig); !errors.Is(err, ErrNotPayable) {
		t.Fatalf("VerifyPayment on refunded booking = %v, want ErrNotPayable", err)
	}
	if off.reserved != 1 {
		t.Errorf("reserved = %d, want 1 (no re-reserve)", off.reserved)
	}
}
