package models

import "time"

// OfferingInfo is the booking-relevant projection of a ride or event,
// shared by the booking lifecycle regardless of the offering kind.
type OfferingInfo struct {
	ID                 string
	Kind               OfferingKind
	Title              string
	Price              float64
	StartTime          time.Time
	RegistrationCutoff time.Time
	IsActive           bool
	MaxSeats           int
	TakenSeats         int
}

// SeatsLeft returns the remaining capacity.
func (o OfferingInfo) SeatsLeft() int {
	return o.MaxSeats - o.TakenSeats
}
