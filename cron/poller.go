package cron

import (
	"context"
	"fmt"
	"time"

	"cmueats/models"
	"cmueats/services/dining"
	"cmueats/services/publisher"

	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LocationPoller refreshes the dining snapshot on a schedule and pushes the
// resulting statuses to the publisher, if one is configured.
type LocationPoller struct {
	Locations dining.LocationService
	Publisher publisher.StatusPublisher
	Logger    *zap.Logger
	Clock     func() time.Time

	scheduler *cronlib.Cron
}

func NewLocationPoller(locations dining.LocationService, pub publisher.StatusPublisher, logger *zap.Logger) *LocationPoller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationPoller{
		Locations: locations,
		Publisher: pub,
		Logger:    logger,
		Clock:     time.Now,
	}
}

// RunOnce performs a single refresh and returns the statuses it computed.
func (p *LocationPoller) RunOnce(ctx context.Context) []models.LocationStatus {
	locations := p.Locations.Refresh(ctx)
	now := p.Clock().In(p.Locations.TimeZone())

	statuses := make([]models.LocationStatus, 0, len(locations))
	for _, loc := range locations {
		statuses = append(statuses, dining.BuildStatus(loc, now))
	}
	dining.SortStatuses(statuses)

	if p.Publisher != nil && len(statuses) > 0 {
		if _, err := p.Publisher.PublishStatuses(statuses); err != nil {
			p.Logger.Warn("Failed to publish location statuses", zap.Error(err))
		}
	}
	return statuses
}

// Start runs RunOnce immediately and then on schedule until ctx is done.
func (p *LocationPoller) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = "@every 1m"
	}

	p.scheduler = cronlib.New(cronlib.WithChain(cronlib.SkipIfStillRunning(cronlib.DiscardLogger)))
	if _, err := p.scheduler.AddFunc(schedule, func() { p.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", schedule, err)
	}

	p.Logger.Info("Starting dining location poller", zap.String("schedule", schedule))
	p.RunOnce(ctx)
	p.scheduler.Start()

	go func() {
		<-ctx.Done()
		p.Stop()
		p.Logger.Info("Dining location poller stopped")
	}()
	return nil
}

// Stop halts the schedule and waits for a running poll to finish.
func (p *LocationPoller) Stop() {
	if p.scheduler == nil {
		return
	}
	<-p.scheduler.Stop().Done()
}
