package dining

import (
	"context"
	"errors"
	"testing"
	"time"

	"cmueats/models"
)

type fakeSource struct {
	locations []models.Location
	err       error
	calls     int
}

func (f *fakeSource) FetchLocations(ctx context.Context) ([]models.Location, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.locations, nil
}

type fakeCache struct {
	snapshot *models.LocationSnapshot
	getErr   error
	sets     int
}

func (f *fakeCache) SetSnapshot(ctx context.Context, snapshot models.LocationSnapshot) error {
	f.sets++
	f.snapshot = &snapshot
	return nil
}

func (f *fakeCache) GetSnapshot(ctx context.Context) (*models.LocationSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.snapshot == nil {
		return nil, ErrCacheMiss
	}
	return f.snapshot, nil
}

func newTestService(t *testing.T, source LocationSource, cache LocationCache) *DefaultLocationService {
	t.Helper()
	loc, err := LoadTimeZone("")
	if err != nil {
		t.Fatalf("load time zone: %v", err)
	}
	svc := NewDefaultLocationService(source, cache, loc, nil)
	svc.Clock = func() time.Time { return time.Date(2024, time.October, 14, 16, 0, 0, 0, time.UTC) }
	return svc
}

func testLocations() []models.Location {
	return []models.Location{
		{ConceptID: 1, Name: "the exchange", Times: []models.TimeSlot{slot(1, 8, 0, 1, 14, 0)}},
		{ConceptID: 2, Name: "ABP", Times: []models.TimeSlot{slot(1, 13, 0, 1, 20, 0)}},
		{ConceptID: 3, Name: "de fer coffee", Times: nil},
	}
}

func TestRefresh_NormalizesAndCaches(t *testing.T) {
	source := &fakeSource{locations: testLocations()}
	cache := &fakeCache{}
	svc := newTestService(t, source, cache)

	locations := svc.Refresh(context.Background())
	if len(locations) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(locations))
	}
	if locations[0].Name != "The Exchange" || locations[1].Name != "Abp" {
		t.Fatalf("expected title-cased names, got %q and %q", locations[0].Name, locations[1].Name)
	}
	if locations[2].Times == nil {
		t.Fatalf("expected empty times slice, got nil")
	}
	if cache.sets != 1 || cache.snapshot.FetchedAt != svc.Clock().Unix() {
		t.Fatalf("expected snapshot cached once, got %d sets", cache.sets)
	}
}

func TestRefresh_FetchFailureDegradesToEmpty(t *testing.T) {
	source := &fakeSource{err: errors.New("boom")}
	cache := &fakeCache{}
	svc := newTestService(t, source, cache)

	locations := svc.Refresh(context.Background())
	if locations == nil || len(locations) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", locations)
	}
	if cache.sets != 0 {
		t.Fatalf("expected failed fetch not to overwrite cache")
	}
	if source.calls != 1 {
		t.Fatalf("expected one fetch without retry, got %d", source.calls)
	}
}

func TestStatuses_UsesEasternTimeAndSorts(t *testing.T) {
	source := &fakeSource{locations: testLocations()}
	svc := newTestService(t, source, &fakeCache{})

	// 16:00 UTC on Monday 2024-10-14 is 12:00 EDT.
	now := time.Date(2024, time.October, 14, 16, 0, 0, 0, time.UTC)
	statuses := svc.Statuses(context.Background(), now)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	first := statuses[0]
	if first.ConceptID != 1 || !first.IsOpen || first.StatusMsg != "Closes in 2 hours (at 2:00 PM)" {
		t.Fatalf("unexpected first status %+v", first)
	}
	if first.TimeUntilClosed == nil || *first.TimeUntilClosed != 120 || first.TimeUntilOpen != nil {
		t.Fatalf("expected 120 minutes until closed, got %+v", first)
	}

	second := statuses[1]
	if second.ConceptID != 2 || second.IsOpen || second.StatusMsg != "Opens in 1 hour (at 1:00 PM)" || !second.ChangesSoon {
		t.Fatalf("unexpected second status %+v", second)
	}

	third := statuses[2]
	if third.StatusMsg != ClosedIndefinitely || third.TimeUntilOpen != nil || third.TimeUntilClosed != nil {
		t.Fatalf("unexpected third status %+v", third)
	}
}

func TestSnapshot_PrefersCache(t *testing.T) {
	source := &fakeSource{locations: testLocations()}
	cache := &fakeCache{snapshot: &models.LocationSnapshot{
		Locations: []models.Location{{ConceptID: 9, Name: "Cached"}},
		FetchedAt: 42,
	}}
	svc := newTestService(t, source, cache)

	snapshot := svc.Snapshot(context.Background())
	if source.calls != 0 {
		t.Fatalf("expected cache hit without fetch, got %d fetches", source.calls)
	}
	if len(snapshot.Locations) != 1 || snapshot.Locations[0].ConceptID != 9 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	cache.getErr = errors.New("redis down")
	snapshot = svc.Snapshot(context.Background())
	if source.calls != 1 || len(snapshot.Locations) != 3 {
		t.Fatalf("expected fallback fetch, got %d fetches and %d locations", source.calls, len(snapshot.Locations))
	}
}

func TestSnapshot_CacheOutageUsesLastRefresh(t *testing.T) {
	source := &fakeSource{locations: testLocations()}
	cache := &fakeCache{getErr: errors.New("redis down")}
	svc := newTestService(t, source, cache)

	svc.Refresh(context.Background())
	if source.calls != 1 {
		t.Fatalf("expected one fetch from refresh, got %d", source.calls)
	}

	for i := 0; i < 3; i++ {
		snapshot := svc.Snapshot(context.Background())
		if len(snapshot.Locations) != 3 || snapshot.FetchedAt != svc.Clock().Unix() {
			t.Fatalf("expected last refreshed snapshot, got %+v", snapshot)
		}
	}
	if source.calls != 1 {
		t.Fatalf("expected no upstream fetch during cache outage, got %d fetches", source.calls)
	}

	// A failed refresh keeps the previous snapshot.
	source.err = errors.New("upstream down")
	svc.Refresh(context.Background())
	if snapshot := svc.Snapshot(context.Background()); len(snapshot.Locations) != 3 {
		t.Fatalf("expected previous snapshot after failed refresh, got %d locations", len(snapshot.Locations))
	}
}

func TestStatus_ByConceptID(t *testing.T) {
	svc := newTestService(t, &fakeSource{locations: testLocations()}, nil)
	now := time.Date(2024, time.October, 14, 16, 0, 0, 0, time.UTC)

	st, err := svc.Status(context.Background(), 2, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if st.Name != "Abp" {
		t.Fatalf("unexpected status %+v", st)
	}

	if _, err := svc.Status(context.Background(), 404, now); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}
