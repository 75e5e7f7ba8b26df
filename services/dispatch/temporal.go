package dispatch

import (
	"fmt"
	"time"

	"carematch/models"
)

// PastSlotError marks a date/time-window that has already passed.
type PastSlotError struct {
	Date string
}

func (e *PastSlotError) Error() string {
	return fmt.Sprintf("slot date %s is in the past", e.Date)
}

// TemporalValidator rejects dates strictly before today. A date equal to
// today is always valid regardless of time-window; no same-day cutoff is
// assumed. The zero value uses the wall clock.
type TemporalValidator struct {
	Now func() time.Time
}

func (v TemporalValidator) today() time.Time {
	now := time.Now()
	if v.Now != nil {
		now = v.Now()
	}
	return truncateDay(now)
}

// AssertNotPast fails with a PastSlotError when date falls before today.
// Days compare as calendar dates, not instants: a date parsed in UTC and a
// clock running in another zone must still agree on what "today" means.
func (v TemporalValidator) AssertNotPast(date time.Time) error {
	day := date.Format(models.DateLayout)
	if day < v.today().Format(models.DateLayout) {
		return &PastSlotError{Date: day}
	}
	return nil
}

// FilterFuture drops the dates that have already passed. Stale dates are not
// an error here; callers decide what an empty remainder means.
func (v TemporalValidator) FilterFuture(dates []time.Time) []time.Time {
	var out []time.Time
	for _, d := range dates {
		if v.AssertNotPast(d) == nil {
			out = append(out, d)
		}
	}
	return out
}
