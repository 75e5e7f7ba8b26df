package requestRepo

import (
	"context"

	"carematch/models"
)

// RequestRepository defines persistence operations for service requests.
// Lookup methods return (nil, nil) when no document matches; the dispatch
// layer owns the translation into its error taxonomy.
type RequestRepository interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)

	// FindProviderConflicts returns the provider's non-cancelled requests
	// occupying the given date/time-window. Recurring series headers are
	// excluded: their occupancy is fully represented by generated children.
	FindProviderConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]models.ServiceRequest, error)

	// ChildExists reports whether a child generated from parentID already
	// covers the given date.
	ChildExists(ctx context.Context, parentID, date string) (bool, error)

	// ListOpenByRequester returns the requester's open (pending, unassigned)
	// requests of the given service type dated fromDate or later, ordered by
	// date, capped at limit.
	ListOpenByRequester(ctx context.Context, requesterID string, serviceType models.ServiceType, fromDate string, limit int64) ([]models.ServiceRequest, error)

	// AssignRecurringBatch persists the generated children, their agenda
	// occurrences and the parent's assignment as a single transaction.
	AssignRecurringBatch(ctx context.Context, parentID, providerID string, children []models.ServiceRequest, occurrences []models.Occurrence) error

	EnsureIndexes() error
}
