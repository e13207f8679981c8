package booking

import (
	"context"

	"motoclub/models"
)

// OfferingRepo is the capacity surface a booking operates against. Both
// the ride and event repositories satisfy it, so one lifecycle serves
// every offering kind.
type OfferingRepo interface {
	GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error)
	ReserveSeats(ctx context.Context, id string, seats int) error
	ReleaseSeats(ctx context.Context, id string, seats int) error
}

// CreateOrderRequest carries the attendee details for a new booking.
type CreateOrderRequest struct {
	UserID      string
	Attendee    models.Attendee
	BookingType string
	GroupSize   int
	CouponCode  string
}

// OrderResponse is returned to the client for payment collection.
type OrderResponse struct {
	BookingID string  `json:"booking_id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	KeyID     string  `json:"key_id"`
}

// Service is the booking lifecycle entry point.
type Service interface {
	CreateOrder(ctx context.Context, kind models.OfferingKind, offeringID string, req CreateOrderRequest) (*OrderResponse, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error)
	// SetStatus applies an admin status override through the same
	// transition table as the normal flows.
	SetStatus(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByOffering(ctx context.Context, offeringID string) ([]models.Booking, error)

	RegisterAudience(ctx context.Context, eventID, name, email, phone string, seats int) (*models.AudienceRegistration, error)
	SetRegistrationStatus(ctx context.Context, regID string, to models.BookingStatus) (*models.AudienceRegistration, error)
	ListRegistrations(ctx context.Context, eventID string) ([]models.AudienceRegistration, error)
}
