package notification

import "motoclub/models"

// BookingMessage is the payload for a booking confirmation notification.
type BookingMessage struct {
	BookingID     string  `json:"booking_id"`
	OfferingTitle string  `json:"offering_title"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Seats         int     `json:"seats"`
	Amount        float64 `json:"amount"`
}

// Dispatcher schedules a notification without blocking the caller.
// Failures are logged, never surfaced to the booking flow.
type Dispatcher interface {
	BookingConfirmed(b models.Booking, offeringTitle string)
	RegistrationConfirmed(reg models.AudienceRegistration, eventTitle string)
}
