package offerRepo

import (
	"context"

	"carematch/models"
)

// OfferRepository defines persistence operations for proposed offers.
type OfferRepository interface {
	// BulkCreateSkipDuplicates inserts the given offers, silently skipping
	// any that collide with the unique (requestId, providerId) constraint.
	// It returns the number actually inserted.
	BulkCreateSkipDuplicates(ctx context.Context, offers []models.Offer) (int, error)

	ListByRequest(ctx context.Context, requestID string) ([]models.Offer, error)
	EnsureIndexes() error
}
