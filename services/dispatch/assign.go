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

// AssignRecurring expands the parent's recurrence rule, checks every future
// date against the provider's availability and commitments, and persists all
// assignable child occurrences plus the parent's assignment as one unit.
// Dates that fail a check are reported as skips, not errors.
func (s *DefaultDispatchService) AssignRecurring(ctx context.Context, parentRequestID, providerID string) (*AssignResult, error) {
	logger := utils.GetLogger()

	parent, err := s.Requests.GetByID(ctx, parentRequestID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, NewNotFoundError("service request %s not found", parentRequestID)
	}
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, NewNotFoundError("provider %s not found", providerID)
	}

	if !parent.Open() {
		return nil, NewConflictError("request %s is not open for assignment", parent.ID)
	}
	if !parent.IsRecurring {
		return nil, NewValidationError("request %s is not flagged recurring", parent.ID)
	}
	if !parent.RecurrencePattern.Valid() || parent.RecurrenceEndDate == "" {
		return nil, NewValidationError("recurring request %s lacks a pattern or end date", parent.ID)
	}
	if !provider.Offers(parent.ServiceType) {
		return nil, NewCapabilityError("provider %s does not offer %s", provider.ID, parent.ServiceType)
	}

	start, err := time.Parse(models.DateLayout, parent.Date)
	if err != nil {
		return nil, NewValidationError("request %s has an invalid date %q", parent.ID, parent.Date)
	}
	end, err := time.Parse(models.DateLayout, parent.RecurrenceEndDate)
	if err != nil {
		return nil, NewValidationError("request %s has an invalid recurrence end date %q", parent.ID, parent.RecurrenceEndDate)
	}

	dates := s.Clock.FilterFuture(Expand(start, end, parent.RecurrencePattern))
	if len(dates) == 0 {
		return nil, NewEmptyResultError("nothing to schedule: every date in the series is in the past")
	}

	checker := s.conflictChecker()
	now := time.Now()
	var children []models.ServiceRequest
	var occurrences []models.Occurrence
	skipped := []SkippedDate{}

	for _, d := range dates {
		dateStr := d.Format(models.DateLayout)
		verdict, err := checker.IsAssignable(ctx, provider.ID, dateStr, parent.TimeWindow, parent.ID)
		if err != nil {
			return nil, err
		}
		if !verdict.Assignable {
			skipped = append(skipped, SkippedDate{Date: dateStr, Reason: verdict.Reason})
			continue
		}

		child := parent.ChildOf(uuid.New().String(), dateStr, provider.ID, now)
		children = append(children, child)
		occurrences = append(occurrences, models.Occurrence{
			ID:         uuid.New().String(),
			ProviderID: provider.ID,
			RequestID:  child.ID,
			ParentID:   parent.ID,
			Date:       dateStr,
			TimeWindow: parent.TimeWindow,
			Status:     models.StatusAssigned,
			CreatedAt:  now,
		})
	}

	if len(children) == 0 {
		return nil, NewEmptyResultError("no available dates: every remaining date was skipped")
	}

	if err := s.Requests.AssignRecurringBatch(ctx, parent.ID, provider.ID, children, occurrences); err != nil {
		return nil, fmt.Errorf("persisting recurring assignment: %w", err)
	}

	logger.Info("recurring assignment complete",
		zap.String("parentId", parent.ID),
		zap.String("providerId", provider.ID),
		zap.Int("created", len(children)),
		zap.Int("skipped", len(skipped)))

	return &AssignResult{CreatedCount: len(children), Skipped: skipped}, nil
}
