package dispatch

import (
	"time"

	"carematch/models"
)

// Expand turns a recurrence rule into the ordered calendar dates it covers
// within [start, end]. An end before start yields an empty sequence. The
// function never consults the clock; staleness filtering belongs to the
// temporal validator.
func Expand(start, end time.Time, pattern models.RecurrencePattern) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil
	}

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if patternMatches(d, start, pattern) {
			out = append(out, d)
		}
	}
	return out
}

func patternMatches(d, start time.Time, pattern models.RecurrencePattern) bool {
	switch pattern {
	case models.RecurDaily:
		return true
	case models.RecurWeekdays:
		wd := d.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case models.RecurWeekend:
		wd := d.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case models.RecurWeekly:
		return d.Weekday() == start.Weekday()
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
