package memdb

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/repo/repoerrs"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
)

// LogRepo keeps one stream per service. The registry lock guards only the
// map; record operations lock the individual stream.
type LogRepo struct {
	mu      sync.RWMutex
	streams map[string]*stream
}

func NewLogRepo() *LogRepo {
	return &LogRepo{
		streams: make(map[string]*stream),
	}
}

func (r *LogRepo) SaveLog(_ context.Context, entry domain.LogEntry) error {
	for {
		err := r.getOrCreate(entry.Service).append(entry)
		if !errors.Is(err, repoerrs.ErrStreamRetired) {
			return err
		}
		// The sweep reclaimed the stream between lookup and append.
	}
}

func (r *LogRepo) GetLogs(_ context.Context, filter repotypes.LogFilter) ([]domain.LogEntry, error) {
	s, ok := r.lookup(filter.Service)
	if !ok {
		return []domain.LogEntry{}, nil
	}
	return s.rangeQuery(filter.From, filter.To), nil
}

func (r *LogRepo) GetStatsByService(_ context.Context, service string) (domain.ServiceStats, error) {
	stats := domain.ServiceStats{Service: service}

	s, ok := r.lookup(service)
	if !ok {
		return stats, nil
	}

	stats.Oldest, stats.Newest, stats.TotalLogs = s.bounds()
	return stats, nil
}

// RemoveExpiredLogs drops every record older than threshold from every stream
// and reclaims the streams left empty. It returns the number of dropped records.
func (r *LogRepo) RemoveExpiredLogs(_ context.Context, threshold time.Time) int {
	removed := 0
	var emptied []*stream

	for _, s := range r.snapshot() {
		removed += s.evictBefore(threshold)
		if s.isEmpty() {
			emptied = append(emptied, s)
		}
	}

	if len(emptied) > 0 {
		r.reclaim(emptied)
	}

	return removed
}

func (r *LogRepo) CountLogs(_ context.Context) int {
	total := 0
	for _, s := range r.snapshot() {
		total += s.len()
	}
	return total
}

func (r *LogRepo) lookup(service string) (*stream, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.streams[service]
	return s, ok
}

func (r *LogRepo) getOrCreate(service string) *stream {
	if s, ok := r.lookup(service); ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.streams[service]; ok {
		return s
	}
	s := newStream(service)
	r.streams[service] = s
	return s
}

func (r *LogRepo) snapshot() []*stream {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*stream, 0, len(r.streams))
	for _, s := range r.streams {
		out = append(out, s)
	}
	return out
}

// reclaim removes the given streams if they are still registered and still empty.
// Lock order is registry, then stream.
func (r *LogRepo) reclaim(candidates []*stream) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range candidates {
		if r.streams[s.service] != s {
			continue
		}
		if s.retireIfEmpty() {
			delete(r.streams, s.service)
		}
	}
}
