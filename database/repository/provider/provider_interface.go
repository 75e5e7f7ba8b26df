package providerRepo

import (
	"context"

	"carematch/models"
)

// ProviderRepository defines persistence operations for caregiver accounts.
// GetByID returns (nil, nil) when the provider does not exist.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	Upsert(ctx context.Context, p *models.Provider) error

	// List returns up to limit providers ordered by id. The stable order
	// keeps candidate ranking deterministic across backends.
	List(ctx context.Context, limit int64) ([]models.Provider, error)

	EnsureIndexes() error
}
