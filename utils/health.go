package utils

import (
	"context"
	"sync"
	"time"
)

// Pinger is anything whose liveness can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	Healthy   bool            `json:"healthy"`
	CheckedAt time.Time       `json:"checkedAt"`
}

type HealthMonitor struct {
	checks map[string]Pinger
	mu     sync.RWMutex
	status HealthStatus
}

func NewHealthMonitor(checks map[string]Pinger) *HealthMonitor {
	return &HealthMonitor{checks: checks}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Check pings every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	services := make(map[string]bool, len(m.checks))
	healthy := true
	for name, p := range m.checks {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		ok := p.Ping(pingCtx) == nil
		cancel()
		services[name] = ok
		healthy = healthy && ok
	}

	status := HealthStatus{Services: services, Healthy: healthy, CheckedAt: time.Now()}
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
