package service

import (
	"context"
	"time"

	"github.com/Egor213/LogVault/internal/broker"
	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/metrics"
	"github.com/Egor213/LogVault/internal/repo"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
)

type Log interface {
	SendLog(ctx context.Context, in domain.SendLogInput) (domain.LogEntry, error)
	GetLogs(ctx context.Context, lf repotypes.LogFilter) ([]domain.LogResponse, error)
	GetStats(ctx context.Context, service string) (domain.ServiceStats, error)
	CleanupExpiredLogs(ctx context.Context) int
}

type Services struct {
	Log
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	Retention      time.Duration
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log: NewLogService(
			deps.Repos.Log,
			deps.Counters,
			WithProducer(deps.BrokerProducer),
			WithRetention(deps.Retention),
		),
	}
}
