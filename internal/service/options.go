package service

import (
	"time"

	"github.com/Egor213/LogVault/internal/broker"
)

type Option func(*LogService)

// WithRetention ignores non-positive durations.
func WithRetention(d time.Duration) Option {
	return func(s *LogService) {
		if d > 0 {
			s.retention = d
		}
	}
}

func WithProducer(p broker.Producer) Option {
	return func(s *LogService) {
		s.brokerProducer = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *LogService) {
		s.now = now
	}
}
