package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/241luca/soccer-manager/internal/domain/dto"
)

type dashboardStorage interface {
	Stats(ctx context.Context, organizationID string, now time.Time) (*dto.DashboardStats, error)
}

// DashboardService aggregates the organization overview counters. The heavy
// lifting happens in a single storage round trip.
type DashboardService struct {
	stats dashboardStorage
	clock clockwork.Clock
}

func NewDashboardService(stats dashboardStorage, clock clockwork.Clock) *DashboardService {
	return &DashboardService{stats: stats, clock: clock}
}

func (s *DashboardService) Stats(ctx context.Context, organizationID string) (*dto.DashboardStats, error) {
	return s.stats.Stats(ctx, organizationID, s.clock.Now())
}
