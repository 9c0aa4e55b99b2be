package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultSweepInterval = 5 * time.Minute

type Cleaner interface {
	CleanupExpiredLogs(ctx context.Context) int
}

// Sweeper runs the retention cleanup on a fixed interval.
type Sweeper struct {
	cleaner  Cleaner
	interval time.Duration
}

func NewSweeper(c Cleaner, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		cleaner:  c,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	log.WithField("interval", s.interval).Info("Retention sweep started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Retention sweep stopped")
			return
		case <-t.C:
			if n := s.cleaner.CleanupExpiredLogs(ctx); n > 0 {
				log.WithField("removed", n).Debug("Expired logs removed")
			}
		}
	}
}
