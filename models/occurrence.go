package models

import "time"

// Occurrence is one row of a provider's agenda: a concrete dated commitment
// created when a recurring series is assigned. It is tracked separately from
// ServiceRequest so conflict checks have a flat, indexable structure, and it
// carries the storage-level uniqueness guard on (providerId, date, timeWindow).
type Occurrence struct {
	ID         string        `bson:"id" json:"id"`
	ProviderID string        `bson:"providerId" json:"providerId"`
	RequestID  string        `bson:"requestId" json:"requestId"` // the generated child request
	ParentID   string        `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Date       string        `bson:"date" json:"date"` // "2006-01-02"
	TimeWindow TimeWindow    `bson:"timeWindow" json:"timeWindow"`
	Status     RequestStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}
