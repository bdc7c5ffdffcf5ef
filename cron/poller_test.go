package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"cmueats/models"
	"cmueats/services/dining"
)

type fakeLocations struct {
	locations []models.Location
	zone      *time.Location
	refreshes int
}

func (f *fakeLocations) Refresh(ctx context.Context) []models.Location {
	f.refreshes++
	return f.locations
}

func (f *fakeLocations) Statuses(ctx context.Context, now time.Time) []models.LocationStatus {
	return nil
}

func (f *fakeLocations) Status(ctx context.Context, conceptID int, now time.Time) (*models.LocationStatus, error) {
	return nil, dining.ErrLocationNotFound
}

func (f *fakeLocations) Snapshot(ctx context.Context) models.LocationSnapshot {
	return models.LocationSnapshot{Locations: f.locations}
}

func (f *fakeLocations) TimeZone() *time.Location { return f.zone }

type fakePublisher struct {
	batches [][]models.LocationStatus
	err     error
}

func (f *fakePublisher) PublishStatuses(statuses []models.LocationStatus) (int, error) {
	f.batches = append(f.batches, statuses)
	return len(statuses), f.err
}

func (f *fakePublisher) Close() {}

func newFakeLocations(t *testing.T) *fakeLocations {
	t.Helper()
	zone, err := dining.LoadTimeZone("America/New_York")
	if err != nil {
		t.Fatalf("load time zone: %v", err)
	}
	return &fakeLocations{
		zone: zone,
		locations: []models.Location{
			{ConceptID: 1, Name: "Closed Place", Times: []models.TimeSlot{{
				Start: models.WeeklyTimestamp{Day: 2, Hour: 8},
				End:   models.WeeklyTimestamp{Day: 2, Hour: 14},
			}}},
			{ConceptID: 2, Name: "Open Place", Times: []models.TimeSlot{{
				Start: models.WeeklyTimestamp{Day: 1, Hour: 8},
				End:   models.WeeklyTimestamp{Day: 1, Hour: 14},
			}}},
		},
	}
}

func TestRunOnce_PublishesLocalStatuses(t *testing.T) {
	locations := newFakeLocations(t)
	pub := &fakePublisher{}
	p := NewLocationPoller(locations, pub, nil)
	// Monday 12:00 in New York.
	p.Clock = func() time.Time { return time.Date(2024, time.October, 14, 16, 0, 0, 0, time.UTC) }

	statuses := p.RunOnce(context.Background())
	if len(statuses) != 2 || len(pub.batches) != 1 {
		t.Fatalf("expected 2 statuses in one batch, got %d statuses and %d batches", len(statuses), len(pub.batches))
	}
	if statuses[0].ConceptID != 2 || !statuses[0].IsOpen {
		t.Fatalf("expected open location first, got %+v", statuses[0])
	}
	if statuses[0].StatusMsg != "Closes in 2 hours (at 2:00 PM)" {
		t.Fatalf("unexpected message %q", statuses[0].StatusMsg)
	}
	if statuses[1].StatusMsg != "Opens tomorrow at 8:00 AM" {
		t.Fatalf("unexpected message %q", statuses[1].StatusMsg)
	}
}

func TestRunOnce_PublishErrorIsNotFatal(t *testing.T) {
	locations := newFakeLocations(t)
	pub := &fakePublisher{err: errors.New("broker down")}
	p := NewLocationPoller(locations, pub, nil)

	if statuses := p.RunOnce(context.Background()); len(statuses) != 2 {
		t.Fatalf("expected statuses despite publish error, got %d", len(statuses))
	}
}

func TestRunOnce_EmptyRefreshSkipsPublish(t *testing.T) {
	locations := newFakeLocations(t)
	locations.locations = []models.Location{}
	pub := &fakePublisher{}
	p := NewLocationPoller(locations, pub, nil)

	p.RunOnce(context.Background())
	if len(pub.batches) != 0 {
		t.Fatalf("expected no publish for empty refresh, got %d", len(pub.batches))
	}
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	p := NewLocationPoller(newFakeLocations(t), nil, nil)
	if err := p.Start(context.Background(), "not a schedule"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStart_RefreshesImmediately(t *testing.T) {
	locations := newFakeLocations(t)
	p := NewLocationPoller(locations, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx, "@every 1h"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer p.Stop()
	if locations.refreshes != 1 {
		t.Fatalf("expected one immediate refresh, got %d", locations.refreshes)
	}
}
