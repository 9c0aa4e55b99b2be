package httpv1

import (
	"time"

	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
)

type SendLogRequest struct {
	ServiceName string     `json:"service_name"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Message     *string    `json:"message"`
}

type LogResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

type StatsResponse struct {
	Service   string     `json:"service"`
	TotalLogs int        `json:"total_logs"`
	Oldest    *time.Time `json:"oldest,omitempty"`
	Newest    *time.Time `json:"newest,omitempty"`
}

func NewSendLogInputFromRequest(req SendLogRequest) domain.SendLogInput {
	in := domain.SendLogInput{
		Service: req.ServiceName,
		Message: req.Message,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}
	return in
}

func NewLogFilter(service string, from, to time.Time) repotypes.LogFilter {
	return repotypes.LogFilter{
		Service: service,
		From:    from,
		To:      to,
	}
}

func ToLogResponses(logs []domain.LogResponse) []LogResponse {
	out := make([]LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, LogResponse{
			Timestamp: l.Timestamp.UTC(),
			Message:   l.Message,
		})
	}
	return out
}

func ToStatsResponse(stats domain.ServiceStats) StatsResponse {
	resp := StatsResponse{
		Service:   stats.Service,
		TotalLogs: stats.TotalLogs,
	}
	if stats.TotalLogs > 0 {
		oldest, newest := stats.Oldest.UTC(), stats.Newest.UTC()
		resp.Oldest = &oldest
		resp.Newest = &newest
	}
	return resp
}

// parseInstant parses an ISO-8601 instant. An empty value is a missing bound, not an error.
func parseInstant(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}
