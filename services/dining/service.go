// File: services/dining/service.go
package dining

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cmueats/models"

	"go.uber.org/zap"
)

var ErrLocationNotFound = errors.New("location not found")

type LocationService interface {
	Refresh(ctx context.Context) []models.Location
	Statuses(ctx context.Context, now time.Time) []models.LocationStatus
	Status(ctx context.Context, conceptID int, now time.Time) (*models.LocationStatus, error)
	Snapshot(ctx context.Context) models.LocationSnapshot
	TimeZone() *time.Location
}

// DefaultLocationService is the production implementation.
type DefaultLocationService struct {
	Source   LocationSource
	Cache    LocationCache
	Location *time.Location
	Logger   *zap.Logger
	Clock    func() time.Time

	mu       sync.RWMutex
	lastGood *models.LocationSnapshot
}

func NewDefaultLocationService(source LocationSource, cache LocationCache, loc *time.Location, logger *zap.Logger) *DefaultLocationService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultLocationService{
		Source:   source,
		Cache:    cache,
		Location: loc,
		Logger:   logger,
		Clock:    time.Now,
	}
}

func (s *DefaultLocationService) TimeZone() *time.Location {
	return s.Location
}

// NormalizeLocation applies the display rules to one upstream location.
func NormalizeLocation(loc models.Location) models.Location {
	loc.Name = ToTitleCase(loc.Name)
	if loc.Times == nil {
		loc.Times = []models.TimeSlot{}
	}
	return loc
}

// Refresh fetches and caches the upstream locations. A failed fetch is logged
// and degrades to an empty list; the next poll tries again.
func (s *DefaultLocationService) Refresh(ctx context.Context) []models.Location {
	raw, err := s.Source.FetchLocations(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch dining locations", zap.Error(err))
		return []models.Location{}
	}

	locations := make([]models.Location, 0, len(raw))
	for _, loc := range raw {
		locations = append(locations, NormalizeLocation(loc))
	}

	snapshot := models.LocationSnapshot{Locations: locations, FetchedAt: s.Clock().Unix()}
	s.mu.Lock()
	s.lastGood = &snapshot
	s.mu.Unlock()

	if s.Cache != nil {
		if err := s.Cache.SetSnapshot(ctx, snapshot); err != nil {
			s.Logger.Warn("Failed to cache dining locations", zap.Error(err))
		}
	}
	s.Logger.Debug("Refreshed dining locations", zap.Int("count", len(locations)))
	return locations
}

// Snapshot returns the cached locations. When the cache has nothing it falls
// back to the last successful refresh held in memory, and only then fetches.
func (s *DefaultLocationService) Snapshot(ctx context.Context) models.LocationSnapshot {
	if s.Cache != nil {
		snapshot, err := s.Cache.GetSnapshot(ctx)
		if err == nil {
			return *snapshot
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.Logger.Warn("Failed to read cached dining locations", zap.Error(err))
		}
	}

	s.mu.RLock()
	lastGood := s.lastGood
	s.mu.RUnlock()
	if lastGood != nil {
		return *lastGood
	}
	return models.LocationSnapshot{Locations: s.Refresh(ctx), FetchedAt: s.Clock().Unix()}
}

// BuildStatus derives the status of loc at now, which must be in the dining time zone.
func BuildStatus(loc models.Location, now time.Time) models.LocationStatus {
	st := ComputeStatus(loc.Times, now)
	out := models.LocationStatus{
		Location:    loc,
		IsOpen:      st.IsOpen,
		StatusMsg:   st.Message,
		ChangesSoon: st.ChangesSoon,
	}
	if st.MinutesUntilChange >= 0 {
		minutes := st.MinutesUntilChange
		if st.IsOpen {
			out.TimeUntilClosed = &minutes
		} else {
			out.TimeUntilOpen = &minutes
		}
	}
	return out
}

// SortStatuses orders open locations first, then by name.
func SortStatuses(statuses []models.LocationStatus) {
	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].IsOpen != statuses[j].IsOpen {
			return statuses[i].IsOpen
		}
		return statuses[i].Name < statuses[j].Name
	})
}

func (s *DefaultLocationService) Statuses(ctx context.Context, now time.Time) []models.LocationStatus {
	snapshot := s.Snapshot(ctx)
	local := now.In(s.Location)

	statuses := make([]models.LocationStatus, 0, len(snapshot.Locations))
	for _, loc := range snapshot.Locations {
		statuses = append(statuses, BuildStatus(loc, local))
	}
	SortStatuses(statuses)
	return statuses
}

func (s *DefaultLocationService) Status(ctx context.Context, conceptID int, now time.Time) (*models.LocationStatus, error) {
	snapshot := s.Snapshot(ctx)
	for _, loc := range snapshot.Locations {
		if loc.ConceptID == conceptID {
			st := BuildStatus(loc, now.In(s.Location))
			return &st, nil
		}
	}
	return nil, ErrLocationNotFound
}
