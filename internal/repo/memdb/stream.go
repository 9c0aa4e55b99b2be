package memdb

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/repo/repoerrs"
)

// stream holds the records of a single service ordered by timestamp.
// Records with equal timestamps keep their arrival order.
type stream struct {
	service string

	mu      sync.RWMutex
	entries []domain.LogEntry
	// retired is set once the stream has been dropped from the registry.
	retired bool
}

func newStream(service string) *stream {
	return &stream{service: service}
}

// append inserts e after every record with a timestamp <= e.Timestamp.
func (s *stream) append(e domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.retired {
		return repoerrs.ErrStreamRetired
	}

	n := len(s.entries)
	if n == 0 || !e.Timestamp.Before(s.entries[n-1].Timestamp) {
		s.entries = append(s.entries, e)
		return nil
	}

	s.entries = slices.Insert(s.entries, s.upperBound(e.Timestamp), e)
	return nil
}

// rangeQuery returns a copy of the records with start <= timestamp <= end.
func (s *stream) rangeQuery(start, end time.Time) []domain.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo := s.lowerBound(start)
	hi := s.upperBound(end)
	if lo >= hi {
		return []domain.LogEntry{}
	}

	out := make([]domain.LogEntry, hi-lo)
	copy(out, s.entries[lo:hi])
	return out
}

// evictBefore drops every record with timestamp < threshold and returns how many were dropped.
func (s *stream) evictBefore(threshold time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cut := s.lowerBound(threshold)
	if cut == 0 {
		return 0
	}

	clear(s.entries[:cut])
	s.entries = s.entries[cut:]

	// Reallocate once the live part is under a quarter of the backing array,
	// so the copy is never larger than what was just evicted.
	if len(s.entries) < cap(s.entries)/4 {
		s.entries = slices.Clone(s.entries)
	}

	return cut
}

func (s *stream) isEmpty() bool {
	return s.len() == 0
}

func (s *stream) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// bounds returns the oldest and newest timestamps along with the record count.
func (s *stream) bounds() (oldest, newest time.Time, n int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n = len(s.entries)
	if n == 0 {
		return time.Time{}, time.Time{}, 0
	}
	return s.entries[0].Timestamp, s.entries[n-1].Timestamp, n
}

// retireIfEmpty marks an empty stream as retired. Appends to a retired stream fail,
// so the caller may drop it from the registry without losing records.
func (s *stream) retireIfEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		return false
	}
	s.retired = true
	return true
}

// lowerBound is the first index with timestamp >= t. Callers hold mu.
func (s *stream) lowerBound(t time.Time) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].Timestamp.Before(t)
	})
}

// upperBound is the first index with timestamp > t. Callers hold mu.
func (s *stream) upperBound(t time.Time) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Timestamp.After(t)
	})
}
