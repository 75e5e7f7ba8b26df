package models

// ProviderAvailability is one declared slot. A row is authoritative for
// whether the provider opened that date/time-window; absence of a row means
// "not declared", which bulk dispatch treats as unavailable.
type ProviderAvailability struct {
	ProviderID  string     `bson:"providerId" json:"providerId"`
	Date        string     `bson:"date" json:"date"` // "2006-01-02"
	TimeWindow  TimeWindow `bson:"timeWindow" json:"timeWindow"`
	IsAvailable bool       `bson:"isAvailable" json:"isAvailable"`
}
