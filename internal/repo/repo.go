package repo

import (
	"context"
	"time"

	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/repo/memdb"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
)

type Log interface {
	SaveLog(ctx context.Context, entry domain.LogEntry) error
	GetLogs(ctx context.Context, filter repotypes.LogFilter) ([]domain.LogEntry, error)
	GetStatsByService(ctx context.Context, service string) (domain.ServiceStats, error)
	RemoveExpiredLogs(ctx context.Context, threshold time.Time) int
	CountLogs(ctx context.Context) int
}

type Repositories struct {
	Log
}

func NewRepositories() *Repositories {
	return &Repositories{
		Log: memdb.NewLogRepo(),
	}
}
