package models

import "strings"

// DateLayout is the canonical storage format for scheduling dates.
const DateLayout = "2006-01-02"

// TimeWindow is a coarse part-of-day bucket used instead of clock times.
type TimeWindow string

const (
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
	WindowEvening   TimeWindow = "evening"
	WindowNight     TimeWindow = "night"
)

// Valid reports whether tw is one of the known part-of-day buckets.
func (tw TimeWindow) Valid() bool {
	switch tw {
	case WindowMorning, WindowAfternoon, WindowEvening, WindowNight:
		return true
	}
	return false
}

// RecurrencePattern is the rule used to expand one parent request into
// many dated children.
type RecurrencePattern string

const (
	RecurDaily    RecurrencePattern = "daily"
	RecurWeekdays RecurrencePattern = "weekdays"
	RecurWeekend  RecurrencePattern = "weekend"
	RecurWeekly   RecurrencePattern = "weekly"
)

func (p RecurrencePattern) Valid() bool {
	switch p {
	case RecurDaily, RecurWeekdays, RecurWeekend, RecurWeekly:
		return true
	}
	return false
}

// ServiceType identifies a category of care work, e.g. "childcare", "eldercare".
type ServiceType string

// Location is the coarse geography attached to a service request.
type Location struct {
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Region     string `bson:"region" json:"region"`
}

// NormalizeRegion canonicalizes a region or city string before comparison.
// Every geographic match in the engine passes both sides through this helper.
func NormalizeRegion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
