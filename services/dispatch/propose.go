package dispatch

import (
	"context"
	"fmt"
	"time"

	"carematch/models"
	"carematch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// openRequestFanOutLimit bounds the fan-out query. This is a convenience
// operation over upcoming requests, not a full backfill.
const openRequestFanOutLimit = 200

// ProposeAcrossOpenRequests creates one offer from the provider to each of
// the requester's other open requests of the same service type, at the
// provider's configured rate or an explicit negotiable quote. Duplicates are
// skipped on the (requestId, providerId) uniqueness invariant, so re-running
// the operation never errors and simply creates fewer rows.
func (s *DefaultDispatchService) ProposeAcrossOpenRequests(ctx context.Context, sourceRequestID, providerID string) (*ProposeResult, error) {
	logger := utils.GetLogger()

	src, err := s.Requests.GetByID(ctx, sourceRequestID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, NewNotFoundError("service request %s not found", sourceRequestID)
	}
	if !src.Open() {
		return nil, NewConflictError("request %s already has a provider assigned", src.ID)
	}

	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, NewNotFoundError("provider %s not found", providerID)
	}
	if !provider.Offers(src.ServiceType) {
		return nil, NewCapabilityError("provider %s does not offer %s", provider.ID, src.ServiceType)
	}

	quote := ResolveQuote(provider, src.ServiceType)

	today := s.Clock.today().Format(models.DateLayout)
	targets, err := s.Requests.ListOpenByRequester(ctx, src.RequesterID, src.ServiceType, today, openRequestFanOutLimit)
	if err != nil {
		return nil, fmt.Errorf("listing open requests: %w", err)
	}

	now := time.Now()
	var offers []models.Offer
	for _, t := range targets {
		if t.ID == src.ID {
			continue
		}
		offers = append(offers, models.Offer{
			ID:         uuid.New().String(),
			RequestID:  t.ID,
			ProviderID: provider.ID,
			Unit:       quote.Unit,
			Amount:     quote.Amount,
			PriceSet:   quote.Set,
			CreatedAt:  now,
		})
	}

	created, err := s.Offers.BulkCreateSkipDuplicates(ctx, offers)
	if err != nil {
		return nil, fmt.Errorf("persisting offers: %w", err)
	}

	logger.Info("offer dispatch complete",
		zap.String("sourceId", src.ID),
		zap.String("providerId", provider.ID),
		zap.Int("created", created),
		zap.Int("candidates", len(offers)),
		zap.Bool("priced", quote.Set))

	return &ProposeResult{CreatedCount: created, TotalCandidates: len(offers)}, nil
}
