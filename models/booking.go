package models

import "time"

// BookingStatus is the lifecycle state of a booking or registration.
type BookingStatus string

const (
	StatusCreated   BookingStatus = "created"
	StatusPaid      BookingStatus = "paid"
	StatusFailed    BookingStatus = "failed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRefunded  BookingStatus = "refunded"
)

// Booking types.
const (
	BookingIndividual = "individual"
	BookingGroup      = "group"
)

// OfferingKind identifies which collection a booking's parent lives in.
type OfferingKind string

const (
	OfferingRide  OfferingKind = "ride"
	OfferingEvent OfferingKind = "event"
)

// Counted reports whether a status contributes to the parent offering's
// participant counter.
func (s BookingStatus) Counted() bool {
	return s == StatusPaid
}

// Attendee carries the personal details collected per booking.
type Attendee struct {
	Name             string `bson:"name" json:"name" binding:"required"`
	Email            string `bson:"email" json:"email" binding:"required,email"`
	Phone            string `bson:"phone" json:"phone" binding:"required"`
	BloodGroup       string `bson:"blood_group,omitempty" json:"blood_group,omitempty"`
	EmergencyContact string `bson:"emergency_contact,omitempty" json:"emergency_contact,omitempty"`
	MedicalInfo      string `bson:"medical_info,omitempty" json:"medical_info,omitempty"`
}

// Payment is the gateway sub-document stored on a booking.
type Payment struct {
	OrderID   string  `bson:"order_id" json:"order_id"`
	PaymentID string  `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Signature string  `bson:"signature,omitempty" json:"signature,omitempty"`
	Amount    float64 `bson:"amount" json:"amount"`
	Currency  string  `bson:"currency" json:"currency"`
}

// Booking ties one user to one offering (ride or event). Seats is 1 for
// individual bookings and the group size for group bookings.
type Booking struct {
	ID           string        `bson:"id" json:"id"`
	OfferingKind OfferingKind  `bson:"offering_kind" json:"offering_kind"`
	OfferingID   string        `bson:"offering_id" json:"offering_id"`
	UserID       string        `bson:"user_id" json:"user_id"`
	Attendee     Attendee      `bson:"attendee" json:"attendee"`
	BookingType  string        `bson:"booking_type" json:"booking_type"`
	Seats        int           `bson:"seats" json:"seats"`
	Amount       float64       `bson:"amount" json:"amount"`
	Discount     float64       `bson:"discount,omitempty" json:"discount,omitempty"`
	CouponCode   string        `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	Payment      Payment       `bson:"payment" json:"payment"`
	Status       BookingStatus `bson:"status" json:"status"`
	PaidAt       *time.Time    `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	CancelledAt  *time.Time    `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}

// AudienceRegistration is a spectator registration for an event. It shares
// the booking status machine: pending maps to created, confirmed to paid.
type AudienceRegistration struct {
	ID        string        `bson:"id" json:"id"`
	EventID   string        `bson:"event_id" json:"event_id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone" json:"phone"`
	Seats     int           `bson:"seats" json:"seats"`
	Status    BookingStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}
