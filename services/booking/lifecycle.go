package booking

import (
	"fmt"

	"motoclub/models"
)

// transition is one allowed status move.
type transition struct {
	From models.BookingStatus
	To   models.BookingStatus
}

// allowedTransitions is the single source of truth for the booking state
// machine. User flows, the payment callback and admin overrides all go
// through it; there are no per-route status branches.
var allowedTransitions = map[transition]bool{
	{models.StatusCreated, models.StatusPaid}:      true,
	{models.StatusCreated, models.StatusFailed}:    true,
	{models.StatusCreated, models.StatusCancelled}: true,
	{models.StatusFailed, models.StatusPaid}:       true, // payment retry
	{models.StatusPaid, models.StatusCancelled}:    true,
	{models.StatusPaid, models.StatusRefunded}:     true,
	{models.StatusCancelled, models.StatusPaid}:    true, // admin reinstate
	{models.StatusRefunded, models.StatusPaid}:     true, // admin reinstate
}

// CounterDelta returns the per-seat participant-counter delta for a status
// transition: +1 entering a counted state, -1 leaving one, 0 otherwise.
// Undefined transitions are rejected.
func CounterDelta(from, to models.BookingStatus) (int, error) {
	if from == to {
		return 0, fmt.Errorf("booking already in status %q", from)
	}
	if !allowedTransitions[transition{from, to}] {
		return 0, fmt.Errorf("transition %q -> %q is not allowed", from, to)
	}
	delta := 0
	if to.Counted() {
		delta++
	}
	if from.Counted() {
		delta--
	}
	return delta, nil
}
