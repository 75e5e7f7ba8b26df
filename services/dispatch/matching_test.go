package dispatch

import (
	"context"
	"testing"
	"time"

	"carematch/models"
)

func rankFixture() (*testEnv, models.ServiceRequest) {
	env := newTestEnv(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	req := models.ServiceRequest{
		ID:          "req-1",
		RequesterID: "owner-1",
		ServiceType: "childcare",
		Date:        "2025-03-05",
		TimeWindow:  models.WindowMorning,
		Location:    models.Location{City: "Springfield", PostalCode: "12045", Region: "North Shore"},
		Status:      models.StatusPending,
	}
	env.requests.add(req)
	return env, req
}

func addCandidate(env *testEnv, id string, profile models.ProviderProfile) {
	env.providers.add(models.Provider{ID: id, Name: id, Profile: profile})
}

func TestRankCandidatesScoring(t *testing.T) {
	env, req := rankFixture()

	// Full match: availability + service + region = 100.
	addCandidate(env, "prov-full", models.ProviderProfile{
		ServicesOffered: []models.ServiceType{"childcare"},
		Region:          "north shore ", // normalization handles case and spacing
	})
	env.availability.declare("prov-full", req.Date, req.TimeWindow, true)

	// Wrong service, availability + region = 70.
	addCandidate(env, "prov-wrong-service", models.ProviderProfile{
		ServicesOffered: []models.ServiceType{"petcare"},
		Region:          "North Shore",
	})
	env.availability.declare("prov-wrong-service", req.Date, req.TimeWindow, true)

	// Nothing matches: score 0, filtered out.
	addCandidate(env, "prov-zero", models.ProviderProfile{
		ServicesOffered: []models.ServiceType{"petcare"},
		Region:          "Elsewhere",
	})

	result, err := env.svc.RankCandidates(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(result.Candidates), result.Candidates)
	}

	top := result.Candidates[0]
	if top.ProviderID != "prov-full" || top.Score != 100 {
		t.Errorf("expected prov-full at 100, got %s at %d", top.ProviderID, top.Score)
	}

	second := result.Candidates[1]
	if second.ProviderID != "prov-wrong-service" || second.Score != 70 {
		t.Errorf("expected prov-wrong-service at 70, got %s at %d", second.ProviderID, second.Score)
	}
	found := false
	for _, w := range second.Warnings {
		if w == "service not offered" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'service not offered' warning, got %v", second.Warnings)
	}

	for _, cand := range result.Candidates {
		if cand.Score <= 0 || cand.Score > 100 {
			t.Errorf("score out of bounds for %s: %d", cand.ProviderID, cand.Score)
		}
	}
}

func TestRankCandidatesGeographicTiers(t *testing.T) {
	env, req := rankFixture()

	addCandidate(env, "prov-workregion", models.ProviderProfile{
		ServicesOffered: []models.ServiceType{"eldercare"},
		Region:          "Elsewhere",
		WorkRegions:     []string{"NORTH SHORE"},
	})
	addCandidate(env, "prov-city", models.ProviderProfile{
		ServicesOffered: []models.ServiceType{"eldercare"},
		Region:          "Elsewhere",
		City:            "springfield",
	})
	addCandidate(env, "prov-postal", models.ProviderProfile{
		ServicesOffered: []models.ServiceType{"eldercare"},
		Region:          "Elsewhere",
		PostalCode:      "12999",
	})

	result, err := env.svc.RankCandidates(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}

	scores := map[string]int{}
	for _, cand := range result.Candidates {
		scores[cand.ProviderID] = cand.Score
	}
	if scores["prov-workregion"] != RegionPoints {
		t.Errorf("work-region tier: expected %d, got %d", RegionPoints, scores["prov-workregion"])
	}
	if scores["prov-city"] != CityPoints {
		t.Errorf("city tier: expected %d, got %d", CityPoints, scores["prov-city"])
	}
	if scores["prov-postal"] != PostalAreaPoints {
		t.Errorf("postal tier: expected %d, got %d", PostalAreaPoints, scores["prov-postal"])
	}
}

func TestRankCandidatesCapAndTieBreak(t *testing.T) {
	env, req := rankFixture()

	// Four identical candidates; only three surface, ordered by id.
	for _, id := range []string{"prov-d", "prov-b", "prov-a", "prov-c"} {
		addCandidate(env, id, models.ProviderProfile{
			ServicesOffered: []models.ServiceType{"childcare"},
			Region:          "North Shore",
		})
		env.availability.declare(id, req.Date, req.TimeWindow, true)
	}

	result, err := env.svc.RankCandidates(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(result.Candidates))
	}
	want := []string{"prov-a", "prov-b", "prov-c"}
	for i, cand := range result.Candidates {
		if cand.ProviderID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cand.ProviderID)
		}
	}
}

func TestRankCandidatesErrors(t *testing.T) {
	env, _ := rankFixture()

	if _, err := env.svc.RankCandidates(context.Background(), "missing"); !HasCode(err, CodeNotFound) {
		t.Errorf("expected notFound, got %v", err)
	}

	env.requests.add(models.ServiceRequest{
		ID: "req-taken", Status: models.StatusAssigned, ProviderID: "prov-x",
	})
	if _, err := env.svc.RankCandidates(context.Background(), "req-taken"); !HasCode(err, CodeConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}
