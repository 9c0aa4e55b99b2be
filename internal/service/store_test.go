package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/metrics"
	"github.com/Egor213/LogVault/internal/repo"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
	"github.com/Egor213/LogVault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newStoreService(c *clock) *service.LogService {
	return service.NewLogService(repo.NewRepositories().Log, metrics.NewTestCounters(), service.WithClock(c.Now))
}

func send(t *testing.T, s *service.LogService, svc string, ts time.Time, msg string) {
	t.Helper()
	_, err := s.SendLog(context.Background(), domain.SendLogInput{Service: svc, Timestamp: ts, Message: &msg})
	require.NoError(t, err)
}

func TestLogStore_ScenarioA(t *testing.T) {
	base := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	s := newStoreService(&clock{now: base})

	send(t, s, "auth", base.Add(15*time.Minute), "login ok")
	send(t, s, "auth", base.Add(5*time.Minute), "login attempt")

	got, err := s.GetLogs(context.Background(), repotypes.LogFilter{Service: "auth", From: base, To: base.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, []domain.LogResponse{
		{Timestamp: base.Add(5 * time.Minute), Message: "login attempt"},
		{Timestamp: base.Add(15 * time.Minute), Message: "login ok"},
	}, got)
}

func TestLogStore_ScenarioB(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	c := &clock{now: now}
	s := newStoreService(c)

	send(t, s, "x", now.Add(-2*time.Hour), "expired 1")
	send(t, s, "x", now.Add(-90*time.Minute), "expired 2")
	send(t, s, "x", now.Add(-30*time.Minute), "valid 1")
	send(t, s, "x", now.Add(-15*time.Minute), "valid 2")

	assert.Equal(t, 2, s.CleanupExpiredLogs(context.Background()))

	got, err := s.GetLogs(context.Background(), repotypes.LogFilter{Service: "x", From: now.Add(-3 * time.Hour), To: now})
	require.NoError(t, err)
	assert.Equal(t, []domain.LogResponse{
		{Timestamp: now.Add(-30 * time.Minute), Message: "valid 1"},
		{Timestamp: now.Add(-15 * time.Minute), Message: "valid 2"},
	}, got)

	// The sweep is idempotent for a fixed clock.
	assert.Equal(t, 0, s.CleanupExpiredLogs(context.Background()))

	c.now = now.Add(50 * time.Minute)
	assert.Equal(t, 2, s.CleanupExpiredLogs(context.Background()))

	got, err = s.GetLogs(context.Background(), repotypes.LogFilter{Service: "x", From: now.Add(-3 * time.Hour), To: now})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLogStore_ScenarioC(t *testing.T) {
	s := newStoreService(&clock{now: time.Now()})

	got, err := s.GetLogs(context.Background(), repotypes.LogFilter{
		Service: "ghost",
		From:    time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
		To:      time.Date(2025, 3, 17, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLogStore_ScenarioD(t *testing.T) {
	s := newStoreService(&clock{now: time.Now()})

	_, err := s.GetLogs(context.Background(), repotypes.LogFilter{
		Service: "auth",
		From:    time.Date(2025, 3, 17, 10, 30, 0, 0, time.UTC),
		To:      time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestLogStore_ScenarioE(t *testing.T) {
	base := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	s := newStoreService(&clock{now: base})

	send(t, s, "a", base.Add(time.Minute), "a1")
	send(t, s, "b", base.Add(2*time.Minute), "b1")
	send(t, s, "a", base.Add(3*time.Minute), "a2")
	send(t, s, "b", base.Add(4*time.Minute), "b2")

	for svc, want := range map[string][]string{"a": {"a1", "a2"}, "b": {"b1", "b2"}} {
		got, err := s.GetLogs(context.Background(), repotypes.LogFilter{Service: svc, From: base, To: base.Add(time.Hour)})
		require.NoError(t, err)

		msgs := make([]string, 0, len(got))
		for _, l := range got {
			msgs = append(msgs, l.Message)
		}
		assert.Equal(t, want, msgs, "service %s", svc)
	}
}

func TestLogStore_RejectedInputDoesNotMutate(t *testing.T) {
	base := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	s := newStoreService(&clock{now: base})

	_, err := s.SendLog(context.Background(), domain.SendLogInput{Service: "auth", Timestamp: base})
	assert.ErrorIs(t, err, service.ErrValidation)

	stats, err := s.GetStats(context.Background(), "auth")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalLogs)
}

func TestLogStore_DefaultTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	s := newStoreService(&clock{now: now})

	msg := "no timestamp"
	entry, err := s.SendLog(context.Background(), domain.SendLogInput{Service: "auth", Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, now, entry.Timestamp)

	got, err := s.GetLogs(context.Background(), repotypes.LogFilter{Service: "auth", From: now, To: now})
	require.NoError(t, err)
	assert.Equal(t, []domain.LogResponse{{Timestamp: now, Message: msg}}, got)
}

func TestLogStore_ZeroInstantIsMissing(t *testing.T) {
	now := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	s := newStoreService(&clock{now: now})

	yearOne := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	msg := "year one"
	entry, err := s.SendLog(context.Background(), domain.SendLogInput{Service: "auth", Timestamp: yearOne, Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, now, entry.Timestamp)

	_, err = s.GetLogs(context.Background(), repotypes.LogFilter{Service: "auth", From: yearOne, To: now})
	assert.ErrorIs(t, err, service.ErrMissingStart)

	_, err = s.GetLogs(context.Background(), repotypes.LogFilter{Service: "auth", From: now, To: yearOne})
	assert.ErrorIs(t, err, service.ErrMissingEnd)
}
