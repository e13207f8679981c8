package cron

import (
	"errors"
	"testing"
	"time"
)

func TestRetryWithBackoffGivesUp(t *testing.T) {
	failure := errors.New("redis unreachable")
	calls := 0
	var pauses []time.Duration

	err := retryWithBackoff(5, func(d time.Duration) { pauses = append(pauses, d) }, func() error {
		calls++
		return failure
	})

	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want the last failure", err)
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second}
	if len(pauses) != len(want) {
		t.Fatalf("pauses = %v, want %v", pauses, want)
	}
	for i := range want {
		if pauses[i] != want[i] {
			t.Errorf("pause[%d] = %v, want %v", i, pauses[i], want[i])
		}
	}
}

func TestRetryWithBackoffStopsOnSuccess(t *testing.T) {
	calls := 0
	err := retryWithBackoff(5, func(time.Duration) {}, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
