package occurrenceRepo

import (
	"context"

	"carematch/models"
)

// OccurrenceRepository reads the provider agenda. Occurrence rows are written
// only by the recurring-assignment transaction (see the request repository);
// this side exposes the conflict lookup the dispatch engine checks against.
type OccurrenceRepository interface {
	FindConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]models.Occurrence, error)
	EnsureIndexes() error
}
