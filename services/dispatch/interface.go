package dispatch

import (
	"context"

	availabilityRepo "carematch/database/repository/availability"
	occurrenceRepo "carematch/database/repository/occurrence"
	offerRepo "carematch/database/repository/offer"
	providerRepo "carematch/database/repository/provider"
	requestRepo "carematch/database/repository/request"
	"carematch/models"
)

// DispatchService is the matching and dispatch engine: candidate ranking for
// a single open request, bulk materialization of a recurring series against
// one provider, and fan-out of one provider as offers across a requester's
// other open requests.
type DispatchService interface {
	RankCandidates(ctx context.Context, requestID string) (*RankResult, error)
	AssignRecurring(ctx context.Context, parentRequestID, providerID string) (*AssignResult, error)
	ProposeAcrossOpenRequests(ctx context.Context, sourceRequestID, providerID string) (*ProposeResult, error)
}

// RankedCandidate is one scored provider suggestion.
type RankedCandidate struct {
	ProviderID string   `json:"providerId"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons"`
	Warnings   []string `json:"warnings,omitempty"`
}

// RankResult pairs the request with its ranked candidate suggestions.
type RankResult struct {
	Request    *models.ServiceRequest `json:"request"`
	Candidates []RankedCandidate      `json:"candidates"`
}

// SkippedDate records one series date that could not be assigned and why.
type SkippedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// AssignResult reports the partial-success outcome of a recurring assignment.
type AssignResult struct {
	CreatedCount int           `json:"createdCount"`
	Skipped      []SkippedDate `json:"skipped"`
}

// ProposeResult reports how many offers were created out of the candidate
// targets considered.
type ProposeResult struct {
	CreatedCount    int `json:"createdCount"`
	TotalCandidates int `json:"totalCandidates"`
}

// DefaultDispatchService implements DispatchService over the storage
// repositories.
type DefaultDispatchService struct {
	Requests     requestRepo.RequestRepository
	Providers    providerRepo.ProviderRepository
	Availability availabilityRepo.AvailabilityRepository
	Offers       offerRepo.OfferRepository
	Occurrences  occurrenceRepo.OccurrenceRepository
	Clock        TemporalValidator
}

func (s *DefaultDispatchService) conflictChecker() *ConflictChecker {
	return &ConflictChecker{
		Availability: s.Availability,
		Bookings:     bookingCommitments{repo: s.Requests},
		Occurrences:  occurrenceCommitments{repo: s.Occurrences},
		Requests:     s.Requests,
	}
}
