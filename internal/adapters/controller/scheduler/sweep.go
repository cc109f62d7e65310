package scheduler

import (
	"context"
	"time"

	"github.com/241luca/soccer-manager/pkg/logger"
)

type sweepRunner interface {
	Run(ctx context.Context) error
}

// SweepScheduler periodically runs the notification sweep across all active
// organizations.
type SweepScheduler struct {
	sweep    sweepRunner
	interval time.Duration
	logger   *logger.Logger
}

func NewSweepScheduler(sweep sweepRunner, interval time.Duration, log *logger.Logger) *SweepScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SweepScheduler{
		sweep:    sweep,
		interval: interval,
		logger:   log,
	}
}

// Start launches the sweep loop. The first sweep runs immediately, then on
// every tick until ctx is cancelled.
func (s *SweepScheduler) Start(ctx context.Context) {
	go func() {
		s.logger.Infof("notification sweep scheduler started, interval %s", s.interval)
		s.run(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-ctx.Done():
				s.logger.Info("notification sweep scheduler stopped")
				return
			}
		}
	}()
}

func (s *SweepScheduler) run(ctx context.Context) {
	if err := s.sweep.Run(ctx); err != nil {
		s.logger.Errorf("notification sweep failed: %v", err)
	}
}
