package booking

import (
	"testing"

	"motoclub/models"
)

func TestCounterDelta(t *testing.T) {
	tests := []struct {
		name    string
		from    models.BookingStatus
		to      models.BookingStatus
		want    int
		wantErr bool
	}{
		{name: "created to paid counts in", from: models.StatusCreated, to: models.StatusPaid, want: 1},
		{name: "created to failed is neutral", from: models.StatusCreated, to: models.StatusFailed, want: 0},
		{name: "created to cancelled is neutral", from: models.StatusCreated, to: models.StatusCancelled, want: 0},
		{name: "failed to paid counts in", from: models.StatusFailed, to: models.StatusPaid, want: 1},
		{name: "paid to cancelled counts out", from: models.StatusPaid, to: models.StatusCancelled, want: -1},
		{name: "paid to refunded counts out", from: models.StatusPaid, to: models.StatusRefunded, want: -1},
		{name: "cancelled reinstated counts in", from: models.StatusCancelled, to: models.StatusPaid, want: 1},
		{name: "refunded reinstated counts in", from: models.StatusRefunded, to: models.StatusPaid, want: 1},

		{name: "same status rejected", from: models.StatusPaid, to: models.StatusPaid, wantErr: true},
		{name: "failed to refunded rejected", from: models.StatusFailed, to: models.StatusRefunded, wantErr: true},
		{name: "cancelled to created rejected", from: models.StatusCancelled, to: models.StatusCreated, wantErr: true},
		{name: "refunded to cancelled rejected", from: models.StatusRefunded, to: models.StatusCancelled, wantErr: true},
		{name: "unknown status rejected", from: "limbo", to: models.StatusPaid, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CounterDelta(tt.from, tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CounterDelta(%q, %q) expected error, got delta %d", tt.from, tt.to, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CounterDelta(%q, %q) unexpected error: %v", tt.from, tt.to, err)
			}
			if got != tt.want {
				t.Errorf("CounterDelta(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// The delta must always equal counted(to) - counted(from) for every
// allowed transition, so counters stay symmetric across round trips.
func TestCounterDeltaSymmetry(t *testing.T) {
	for tr := range allowedTransitions {
		delta, err := CounterDelta(tr.From, tr.To)
		if err != nil {
			t.Fatalf("allowed transition %q -> %q returned error: %v", tr.From, tr.To, err)
		}
		want := 0
		if tr.To.Counted() {
			want++
		}
		if tr.From.Counted() {
			want--
		}
		if delta != want {
			t.Errorf("CounterDelta(%q, %q) = %d, want %d", tr.From, tr.To, delta, want)
		}
	}
}
