package models

import "time"

// RequestStatus is the lifecycle state of a ServiceRequest.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAssigned  RequestStatus = "assigned"
	StatusConfirmed RequestStatus = "confirmed"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

// Terminal reports whether no further transition is possible from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. The dispatch engine itself only ever performs pending -> assigned;
// the remaining transitions belong to the confirmation flows.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	if next == StatusCancelled {
		return !s.Terminal()
	}
	switch s {
	case StatusPending:
		return next == StatusAssigned
	case StatusAssigned:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// ServiceRequest is one booking posted by an owner. A recurring parent
// carries the recurrence rule; generated children reference the parent via
// RecurringParentID and share its descriptive fields.
type ServiceRequest struct {
	ID                string            `bson:"id" json:"id"`
	RequesterID       string            `bson:"requesterId" json:"requesterId"`
	ProviderID        string            `bson:"providerId,omitempty" json:"providerId,omitempty"` // empty while pending
	ServiceType       ServiceType       `bson:"serviceType" json:"serviceType"`
	Date              string            `bson:"date" json:"date"` // "2006-01-02"
	TimeWindow        TimeWindow        `bson:"timeWindow" json:"timeWindow"`
	Location          Location          `bson:"location" json:"location"`
	SubjectDetails    string            `bson:"subjectDetails,omitempty" json:"subjectDetails,omitempty"`
	Status            RequestStatus     `bson:"status" json:"status"`
	IsRecurring       bool              `bson:"isRecurring" json:"isRecurring"`
	RecurrencePattern RecurrencePattern `bson:"recurrencePattern,omitempty" json:"recurrencePattern,omitempty"`
	RecurrenceEndDate string            `bson:"recurrenceEndDate,omitempty" json:"recurrenceEndDate,omitempty"`
	RecurringParentID string            `bson:"recurringParentId,omitempty" json:"recurringParentId,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
}

// Open reports whether the request can still receive an assignment or offer.
func (r *ServiceRequest) Open() bool {
	return r.Status == StatusPending && r.ProviderID == ""
}

// ChildOf derives a generated child occurrence of parent for the given date,
// assigned to providerID. Identity, date, status and provider differ; all
// descriptive fields are inherited.
func (r *ServiceRequest) ChildOf(id, date, providerID string, createdAt time.Time) ServiceRequest {
	return ServiceRequest{
		ID:                id,
		RequesterID:       r.RequesterID,
		ProviderID:        providerID,
		ServiceType:       r.ServiceType,
		Date:              date,
		TimeWindow:        r.TimeWindow,
		Location:          r.Location,
		SubjectDetails:    r.SubjectDetails,
		Status:            StatusAssigned,
		RecurringParentID: r.ID,
		CreatedAt:         createdAt,
	}
}
