package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Egor213/LogVault/internal/broker"
	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/metrics"
	"github.com/Egor213/LogVault/internal/repo"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/LogVault/pkg/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultRetention = time.Hour

type LogService struct {
	logRepo        repo.Log
	counters       *metrics.Counters
	brokerProducer broker.Producer
	retention      time.Duration
	now            func() time.Time
}

func NewLogService(lr repo.Log, cnt *metrics.Counters, opts ...Option) *LogService {
	s := &LogService{
		logRepo:   lr,
		counters:  cnt,
		retention: DefaultRetention,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SendLog validates in, stamps it with the current time when no timestamp was
// given and stores it. Validation failures wrap ErrValidation and leave the store untouched.
func (s *LogService) SendLog(ctx context.Context, in domain.SendLogInput) (domain.LogEntry, error) {
	if err := validateSendLog(in); err != nil {
		return domain.LogEntry{}, err
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	entry := domain.LogEntry{
		ID:        uuid.NewString(),
		Service:   in.Service,
		Message:   *in.Message,
		Timestamp: ts.UTC(),
	}

	log.WithFields(log.Fields{
		"service":   entry.Service,
		"timestamp": entry.Timestamp,
	}).Debug("Saving log entry")

	if err := s.logRepo.SaveLog(ctx, entry); err != nil {
		return domain.LogEntry{}, errorsUtils.WrapPathErr(errorsUtils.Join(ErrCannotCreateLog, err))
	}
	s.counters.LogsReceived.Inc(entry.Service)

	s.notify(ctx, entry)

	return entry, nil
}

// GetLogs returns the records of lf.Service with lf.From <= timestamp <= lf.To,
// oldest first. An unknown service yields an empty slice.
func (s *LogService) GetLogs(ctx context.Context, lf repotypes.LogFilter) ([]domain.LogResponse, error) {
	if err := validateLogFilter(lf); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"service": lf.Service,
		"from":    lf.From,
		"to":      lf.To,
	}).Debug("Querying logs")

	logs, err := s.logRepo.GetLogs(ctx, lf)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(errorsUtils.Join(ErrCannotGetLogs, err))
	}

	resp := make([]domain.LogResponse, 0, len(logs))
	for _, e := range logs {
		resp = append(resp, e.ToResponse())
	}
	return resp, nil
}

func (s *LogService) GetStats(ctx context.Context, service string) (domain.ServiceStats, error) {
	if err := validateService(service); err != nil {
		return domain.ServiceStats{}, err
	}

	stats, err := s.logRepo.GetStatsByService(ctx, service)
	if err != nil {
		return domain.ServiceStats{}, errorsUtils.WrapPathErr(errorsUtils.Join(ErrCannotGetStats, err))
	}
	return stats, nil
}

// CleanupExpiredLogs evicts, across all services, every record older than
// now - retention. The threshold is computed once for the whole pass.
func (s *LogService) CleanupExpiredLogs(ctx context.Context) int {
	threshold := s.now().Add(-s.retention)

	removed := s.logRepo.RemoveExpiredLogs(ctx, threshold)
	if removed > 0 {
		s.counters.LogsEvicted.Add(float64(removed))
	}

	log.WithFields(log.Fields{
		"threshold": threshold,
		"removed":   removed,
		"remaining": s.logRepo.CountLogs(ctx),
	}).Debug("Expired logs cleanup finished")

	return removed
}

type logNotification struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// notify publishes the accepted entry. Broker failures never fail the ingest.
func (s *LogService) notify(ctx context.Context, entry domain.LogEntry) {
	if s.brokerProducer == nil {
		return
	}

	payload, err := json.Marshal(logNotification{
		ID:        entry.ID,
		Service:   entry.Service,
		Timestamp: entry.Timestamp,
		Message:   entry.Message,
	})
	if err != nil {
		log.WithError(err).Warn("Cannot encode log notification")
		return
	}

	if err := s.brokerProducer.SendMessage(ctx, []byte(entry.Service), payload); err != nil {
		log.WithFields(log.Fields{
			"service": entry.Service,
			"id":      entry.ID,
			"error":   err,
		}).Warn("Failed to publish log notification")
	}
}
