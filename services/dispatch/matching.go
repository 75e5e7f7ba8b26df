package dispatch

import (
	"context"
	"sort"
	"strings"

	"carematch/models"
)

// Score weights. The additive maximum is 100; the region tiers are mutually
// exclusive, highest applicable tier wins.
const (
	AvailabilityPoints = 40
	ServicePoints      = 30
	RegionPoints       = 30
	CityPoints         = 20
	PostalAreaPoints   = 10
)

const (
	maxRankedCandidates = 3
	candidatePoolLimit  = 500
)

// RankCandidates scores the provider pool against a single open request and
// returns the top suggestions. Only candidates with a positive score surface;
// ties break by ascending provider id so the ordering is deterministic across
// storage backends.
func (s *DefaultDispatchService) RankCandidates(ctx context.Context, requestID string) (*RankResult, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, NewNotFoundError("service request %s not found", requestID)
	}
	if !req.Open() {
		return nil, NewConflictError("request %s is not open for matching", requestID)
	}

	pool, err := s.Providers.List(ctx, candidatePoolLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedCandidate, 0, len(pool))
	for i := range pool {
		cand, err := s.scoreCandidate(ctx, req, &pool[i])
		if err != nil {
			return nil, err
		}
		if cand.Score > 0 {
			ranked = append(ranked, cand)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ProviderID < ranked[j].ProviderID
	})
	if len(ranked) > maxRankedCandidates {
		ranked = ranked[:maxRankedCandidates]
	}

	return &RankResult{Request: req, Candidates: ranked}, nil
}

func (s *DefaultDispatchService) scoreCandidate(ctx context.Context, req *models.ServiceRequest, p *models.Provider) (RankedCandidate, error) {
	cand := RankedCandidate{ProviderID: p.ID}

	row, err := s.Availability.Get(ctx, p.ID, req.Date, req.TimeWindow)
	if err != nil {
		return cand, err
	}
	if row != nil && row.IsAvailable {
		cand.Score += AvailabilityPoints
		cand.Reasons = append(cand.Reasons, "availability declared")
	} else {
		cand.Warnings = append(cand.Warnings, "no availability declared")
	}

	if p.Offers(req.ServiceType) {
		cand.Score += ServicePoints
		cand.Reasons = append(cand.Reasons, "service offered")
	} else {
		cand.Warnings = append(cand.Warnings, "service not offered")
	}

	points, label := geographicTier(req.Location, p.Profile)
	if points > 0 {
		cand.Score += points
		cand.Reasons = append(cand.Reasons, label)
	} else {
		cand.Warnings = append(cand.Warnings, "different region")
	}

	return cand, nil
}

// geographicTier evaluates the mutually exclusive region tiers in priority
// order: own region or work-region, then city, then the first two characters
// of the postal code as a coarse proximity signal.
func geographicTier(loc models.Location, profile models.ProviderProfile) (int, string) {
	if want := models.NormalizeRegion(loc.Region); want != "" {
		if models.NormalizeRegion(profile.Region) == want {
			return RegionPoints, "region match"
		}
		for _, wr := range profile.WorkRegions {
			if models.NormalizeRegion(wr) == want {
				return RegionPoints, "work region match"
			}
		}
	}
	if city := models.NormalizeRegion(loc.City); city != "" && models.NormalizeRegion(profile.City) == city {
		return CityPoints, "city match"
	}
	if len(loc.PostalCode) >= 2 && len(profile.PostalCode) >= 2 &&
		strings.EqualFold(loc.PostalCode[:2], profile.PostalCode[:2]) {
		return PostalAreaPoints, "postal area match"
	}
	return 0, ""
}
