package dispatch

import (
	"context"

	availabilityRepo "carematch/database/repository/availability"
	occurrenceRepo "carematch/database/repository/occurrence"
	requestRepo "carematch/database/repository/request"
	"carematch/models"
)

// Skip reasons reported by the conflict checker.
const (
	ReasonNoAvailability     = "no availability declared"
	ReasonBookingConflict    = "conflicts with existing booking"
	ReasonOccurrenceConflict = "conflicts with assigned occurrence"
	ReasonSeriesExists       = "series already exists"
)

// Commitment is one existing claim on a provider's slot.
type Commitment struct {
	Ref  string // id of the underlying record
	Kind string // "booking" or "occurrence"
}

// CommitmentSource answers where a provider is already committed. Bookings
// and agenda occurrences live in different structures; modelling both behind
// one capability keeps the checker depending on a single lookup shape.
type CommitmentSource interface {
	FindConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]Commitment, error)
}

type bookingCommitments struct {
	repo requestRepo.RequestRepository
}

func (s bookingCommitments) FindConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]Commitment, error) {
	reqs, err := s.repo.FindProviderConflicts(ctx, providerID, date, window)
	if err != nil {
		return nil, err
	}
	out := make([]Commitment, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, Commitment{Ref: r.ID, Kind: "booking"})
	}
	return out, nil
}

type occurrenceCommitments struct {
	repo occurrenceRepo.OccurrenceRepository
}

func (s occurrenceCommitments) FindConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]Commitment, error) {
	occs, err := s.repo.FindConflicts(ctx, providerID, date, window)
	if err != nil {
		return nil, err
	}
	out := make([]Commitment, 0, len(occs))
	for _, o := range occs {
		out = append(out, Commitment{Ref: o.ID, Kind: "occurrence"})
	}
	return out, nil
}

// Assignability is the verdict for one provider/date/time-window triple.
type Assignability struct {
	Assignable bool   `json:"assignable"`
	Reason     string `json:"reason,omitempty"`
}

// ConflictChecker decides whether a provider can legally take a slot. It
// performs no writes; checks run in order and short-circuit on the first
// failure. Declared availability is blocking here: bulk dispatch never
// assigns into an undeclared slot.
type ConflictChecker struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     CommitmentSource
	Occurrences  CommitmentSource
	Requests     requestRepo.RequestRepository
}

// IsAssignable runs the full check. parentID enables the duplicate-generation
// guard for bulk recurring assignment; pass "" to skip it.
func (c *ConflictChecker) IsAssignable(ctx context.Context, providerID, date string, window models.TimeWindow, parentID string) (Assignability, error) {
	row, err := c.Availability.Get(ctx, providerID, date, window)
	if err != nil {
		return Assignability{}, err
	}
	if row == nil || !row.IsAvailable {
		return Assignability{Reason: ReasonNoAvailability}, nil
	}

	bookings, err := c.Bookings.FindConflicts(ctx, providerID, date, window)
	if err != nil {
		return Assignability{}, err
	}
	if len(bookings) > 0 {
		return Assignability{Reason: ReasonBookingConflict}, nil
	}

	occs, err := c.Occurrences.FindConflicts(ctx, providerID, date, window)
	if err != nil {
		return Assignability{}, err
	}
	if len(occs) > 0 {
		return Assignability{Reason: ReasonOccurrenceConflict}, nil
	}

	if parentID != "" {
		exists, err := c.Requests.ChildExists(ctx, parentID, date)
		if err != nil {
			return Assignability{}, err
		}
		if exists {
			return Assignability{Reason: ReasonSeriesExists}, nil
		}
	}

	return Assignability{Assignable: true}, nil
}
