package dispatch

import (
	"context"
	"testing"
	"time"

	"carematch/models"
)

func TestIsAssignable(t *testing.T) {
	const (
		provider = "prov-1"
		day      = "2025-04-01"
	)
	window := models.WindowMorning

	setup := func() (*testEnv, *ConflictChecker) {
		env := newTestEnv(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		return env, env.svc.conflictChecker()
	}

	t.Run("no availability declared", func(t *testing.T) {
		_, checker := setup()
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "")
		if err != nil {
			t.Fatal(err)
		}
		if got.Assignable || got.Reason != ReasonNoAvailability {
			t.Errorf("expected %q block, got %+v", ReasonNoAvailability, got)
		}
	})

	t.Run("availability declared unavailable", func(t *testing.T) {
		env, checker := setup()
		env.availability.declare(provider, day, window, false)
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "")
		if err != nil {
			t.Fatal(err)
		}
		if got.Assignable || got.Reason != ReasonNoAvailability {
			t.Errorf("expected %q block, got %+v", ReasonNoAvailability, got)
		}
	})

	t.Run("existing booking blocks", func(t *testing.T) {
		env, checker := setup()
		env.availability.declare(provider, day, window, true)
		env.requests.add(models.ServiceRequest{
			ID: "req-busy", ProviderID: provider, Date: day, TimeWindow: window,
			Status: models.StatusAssigned,
		})
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "")
		if err != nil {
			t.Fatal(err)
		}
		if got.Assignable || got.Reason != ReasonBookingConflict {
			t.Errorf("expected %q block, got %+v", ReasonBookingConflict, got)
		}
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		env, checker := setup()
		env.availability.declare(provider, day, window, true)
		env.requests.add(models.ServiceRequest{
			ID: "req-cancelled", ProviderID: provider, Date: day, TimeWindow: window,
			Status: models.StatusCancelled,
		})
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Assignable {
			t.Errorf("expected assignable, got blocked: %q", got.Reason)
		}
	})

	t.Run("assigned occurrence blocks", func(t *testing.T) {
		env, checker := setup()
		env.availability.declare(provider, day, window, true)
		env.occurrences.occs = append(env.occurrences.occs, models.Occurrence{
			ID: "occ-1", ProviderID: provider, Date: day, TimeWindow: window,
			Status: models.StatusAssigned,
		})
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "")
		if err != nil {
			t.Fatal(err)
		}
		if got.Assignable || got.Reason != ReasonOccurrenceConflict {
			t.Errorf("expected %q block, got %+v", ReasonOccurrenceConflict, got)
		}
	})

	t.Run("generated child blocks regeneration", func(t *testing.T) {
		env, checker := setup()
		env.availability.declare(provider, day, window, true)
		env.requests.add(models.ServiceRequest{
			ID: "child-1", RecurringParentID: "parent-1", Date: day,
			TimeWindow: models.WindowEvening, // different window: still a duplicate for the series
			ProviderID: "someone-else", Status: models.StatusAssigned,
		})
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "parent-1")
		if err != nil {
			t.Fatal(err)
		}
		if got.Assignable || got.Reason != ReasonSeriesExists {
			t.Errorf("expected %q block, got %+v", ReasonSeriesExists, got)
		}

		// Without the parent id the guard is skipped.
		got, err = checker.IsAssignable(context.Background(), provider, day, window, "")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Assignable {
			t.Errorf("expected assignable without series guard, got %q", got.Reason)
		}
	})

	t.Run("all clear", func(t *testing.T) {
		env, checker := setup()
		env.availability.declare(provider, day, window, true)
		got, err := checker.IsAssignable(context.Background(), provider, day, window, "parent-1")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Assignable || got.Reason != "" {
			t.Errorf("expected clear verdict, got %+v", got)
		}
	})
}
