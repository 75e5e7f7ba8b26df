package dispatch

import (
	"context"
	"errors"
	"sort"
	"time"

	"carematch/models"
)

// In-memory repository fakes. They mirror the query semantics of the Mongo
// implementations closely enough for engine-level tests.

type fakeOccurrenceRepo struct {
	occs []models.Occurrence
}

func (f *fakeOccurrenceRepo) FindConflicts(_ context.Context, providerID, date string, window models.TimeWindow) ([]models.Occurrence, error) {
	var out []models.Occurrence
	for _, o := range f.occs {
		if o.ProviderID == providerID && o.Date == date && o.TimeWindow == window && o.Status != models.StatusCancelled {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOccurrenceRepo) EnsureIndexes() error { return nil }

type fakeRequestRepo struct {
	requests  map[string]*models.ServiceRequest
	occs      *fakeOccurrenceRepo
	failBatch bool
}

func newFakeRequestRepo(occs *fakeOccurrenceRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.ServiceRequest), occs: occs}
}

func (f *fakeRequestRepo) add(req models.ServiceRequest) {
	r := req
	f.requests[r.ID] = &r
}

func (f *fakeRequestRepo) Create(_ context.Context, req *models.ServiceRequest) error {
	f.add(*req)
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*models.ServiceRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) FindProviderConflicts(_ context.Context, providerID, date string, window models.TimeWindow) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, r := range f.requests {
		if r.ProviderID == providerID && r.Date == date && r.TimeWindow == window &&
			r.Status != models.StatusCancelled && !r.IsRecurring {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ChildExists(_ context.Context, parentID, date string) (bool, error) {
	for _, r := range f.requests {
		if r.RecurringParentID == parentID && r.Date == date && r.Status != models.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) ListOpenByRequester(_ context.Context, requesterID string, serviceType models.ServiceType, fromDate string, limit int64) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, r := range f.requests {
		if r.RequesterID == requesterID && r.ServiceType == serviceType &&
			r.Status == models.StatusPending && r.ProviderID == "" && r.Date >= fromDate {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRequestRepo) AssignRecurringBatch(_ context.Context, parentID, providerID string, children []models.ServiceRequest, occurrences []models.Occurrence) error {
	if f.failBatch {
		return errors.New("simulated transaction failure")
	}
	parent, ok := f.requests[parentID]
	if !ok || parent.Status != models.StatusPending {
		return errors.New("parent request is no longer pending")
	}
	for _, c := range children {
		f.add(c)
	}
	f.occs.occs = append(f.occs.occs, occurrences...)
	parent.Status = models.StatusAssigned
	parent.ProviderID = providerID
	return nil
}

func (f *fakeRequestRepo) EnsureIndexes() error { return nil }

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[string]*models.Provider)}
}

func (f *fakeProviderRepo) add(p models.Provider) {
	cp := p
	f.providers[cp.ID] = &cp
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProviderRepo) Upsert(_ context.Context, p *models.Provider) error {
	f.add(*p)
	return nil
}

func (f *fakeProviderRepo) List(_ context.Context, limit int64) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProviderRepo) EnsureIndexes() error { return nil }

type fakeAvailabilityRepo struct {
	rows map[string]models.ProviderAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{rows: make(map[string]models.ProviderAvailability)}
}

func availKey(providerID, date string, window models.TimeWindow) string {
	return providerID + "|" + date + "|" + string(window)
}

func (f *fakeAvailabilityRepo) declare(providerID, date string, window models.TimeWindow, available bool) {
	f.rows[availKey(providerID, date, window)] = models.ProviderAvailability{
		ProviderID:  providerID,
		Date:        date,
		TimeWindow:  window,
		IsAvailable: available,
	}
}

func (f *fakeAvailabilityRepo) Get(_ context.Context, providerID, date string, window models.TimeWindow) (*models.ProviderAvailability, error) {
	row, ok := f.rows[availKey(providerID, date, window)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeAvailabilityRepo) BulkSet(_ context.Context, rows []models.ProviderAvailability) error {
	for _, row := range rows {
		f.rows[availKey(row.ProviderID, row.Date, row.TimeWindow)] = row
	}
	return nil
}

func (f *fakeAvailabilityRepo) EnsureIndexes() error { return nil }

type fakeOfferRepo struct {
	offers map[string]models.Offer // keyed (requestId, providerId)
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]models.Offer)}
}

func (f *fakeOfferRepo) BulkCreateSkipDuplicates(_ context.Context, offers []models.Offer) (int, error) {
	created := 0
	for _, o := range offers {
		key := o.RequestID + "|" + o.ProviderID
		if _, exists := f.offers[key]; exists {
			continue
		}
		f.offers[key] = o
		created++
	}
	return created, nil
}

func (f *fakeOfferRepo) ListByRequest(_ context.Context, requestID string) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range f.offers {
		if o.RequestID == requestID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) EnsureIndexes() error { return nil }

// testEnv bundles a dispatch service over fresh fakes with a frozen clock.
type testEnv struct {
	svc          *DefaultDispatchService
	requests     *fakeRequestRepo
	providers    *fakeProviderRepo
	availability *fakeAvailabilityRepo
	offers       *fakeOfferRepo
	occurrences  *fakeOccurrenceRepo
}

func newTestEnv(now time.Time) *testEnv {
	occs := &fakeOccurrenceRepo{}
	reqs := newFakeRequestRepo(occs)
	provs := newFakeProviderRepo()
	avail := newFakeAvailabilityRepo()
	offers := newFakeOfferRepo()

	return &testEnv{
		svc: &DefaultDispatchService{
			Requests:     reqs,
			Providers:    provs,
			Availability: avail,
			Offers:       offers,
			Occurrences:  occs,
			Clock:        TemporalValidator{Now: func() time.Time { return now }},
		},
		requests:     reqs,
		providers:    provs,
		availability: avail,
		offers:       offers,
		occurrences:  occs,
	}
}
