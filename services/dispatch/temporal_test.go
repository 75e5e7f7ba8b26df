package dispatch

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) TemporalValidator {
	return TemporalValidator{Now: func() time.Time { return t }}
}

func TestAssertNotPast(t *testing.T) {
	v := fixedClock(time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC))

	if err := v.AssertNotPast(date(2025, 3, 9)); err == nil {
		t.Error("expected yesterday to fail")
	} else {
		var pastErr *PastSlotError
		if !errors.As(err, &pastErr) {
			t.Errorf("expected PastSlotError, got %T", err)
		}
	}

	// Today is valid regardless of time-window; no same-day cutoff.
	if err := v.AssertNotPast(date(2025, 3, 10)); err != nil {
		t.Errorf("expected today to pass, got %v", err)
	}
	if err := v.AssertNotPast(date(2025, 3, 11)); err != nil {
		t.Errorf("expected tomorrow to pass, got %v", err)
	}
}

func TestAssertNotPastAcrossZones(t *testing.T) {
	// Candidate dates parse into UTC midnight; the clock may run in any zone.
	// The comparison is between calendar days, never between instants.
	west := time.FixedZone("UTC-8", -8*60*60)
	v := fixedClock(time.Date(2025, 3, 1, 20, 0, 0, 0, west))

	if err := v.AssertNotPast(date(2025, 3, 1)); err != nil {
		t.Errorf("date equal to today rejected as past: %v", err)
	}
	if err := v.AssertNotPast(date(2025, 2, 28)); err == nil {
		t.Error("expected yesterday to fail")
	}

	// East of UTC the local calendar may already be a day ahead.
	east := time.FixedZone("UTC+13", 13*60*60)
	v = fixedClock(time.Date(2025, 3, 2, 1, 0, 0, 0, east))
	if err := v.AssertNotPast(date(2025, 3, 1)); err == nil {
		t.Error("expected yesterday (by the clock's calendar) to fail")
	}
	if err := v.AssertNotPast(date(2025, 3, 2)); err != nil {
		t.Errorf("expected today to pass, got %v", err)
	}
}

func TestFilterFutureDropsStaleDates(t *testing.T) {
	v := fixedClock(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	in := []time.Time{date(2025, 3, 8), date(2025, 3, 9), date(2025, 3, 10), date(2025, 3, 11)}

	got := v.FilterFuture(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 remaining dates, got %d", len(got))
	}
	if !got[0].Equal(date(2025, 3, 10)) || !got[1].Equal(date(2025, 3, 11)) {
		t.Errorf("unexpected remainder: %v", formatAll(got))
	}
}

func TestFilterFutureAllPast(t *testing.T) {
	v := fixedClock(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	if got := v.FilterFuture([]time.Time{date(2025, 3, 1), date(2025, 3, 2)}); len(got) != 0 {
		t.Errorf("expected empty remainder, got %v", formatAll(got))
	}
}
