package availabilityRepo

import (
	"context"

	"carematch/models"
)

// AvailabilityRepository defines persistence operations for declared
// availability slots. Get returns (nil, nil) when no row was declared for
// that exact (provider, date, time-window).
type AvailabilityRepository interface {
	Get(ctx context.Context, providerID, date string, window models.TimeWindow) (*models.ProviderAvailability, error)
	BulkSet(ctx context.Context, rows []models.ProviderAvailability) error
	EnsureIndexes() error
}
