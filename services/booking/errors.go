package booking

import "errors"

var (
	// ErrOfferingClosed is returned when the offering is inactive or past
	// its registration cutoff.
	ErrOfferingClosed = errors.New("offering is not open for booking")
	// ErrFullyBooked is returned when the requested seats do not fit.
	ErrFullyBooked = errors.New("offering is fully booked")
	// ErrDuplicateBooking is returned when the user already holds an
	// active booking for the same offering.
	ErrDuplicateBooking = errors.New("an active booking for this offering already exists")
	// ErrSignatureMismatch is returned when the payment callback signature
	// does not verify.
	ErrSignatureMismatch = errors.New("payment signature verification failed")
	// ErrNotPayable is returned when a payment callback targets a booking
	// that is not awaiting payment.
	ErrNotPayable = errors.New("booking is not awaiting payment")
	// ErrCancelTooLate is returned when cancellation is requested past the
	// cutoff window before the offering starts.
	ErrCancelTooLate = errors.New("cancellation window has closed")
	// ErrNotCancellable is returned when the booking is not in a
	// cancellable status.
	ErrNotCancellable = errors.New("booking cannot be cancelled from its current status")
)
