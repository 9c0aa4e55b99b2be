package domain

import "time"

// LogEntry is a record accepted into the store. It is never mutated after acceptance.
type LogEntry struct {
	ID        string
	Service   string
	Message   string
	Timestamp time.Time
}

// SendLogInput is an ingestion request before validation.
// A zero Timestamp means "now"; a nil Message is rejected. An explicit
// 0001-01-01T00:00:00Z is the zero time.Time and is restamped as well.
type SendLogInput struct {
	Service   string
	Timestamp time.Time
	Message   *string
}

// LogResponse is the caller-facing shape of a stored record. The service is
// omitted because the caller already supplied it.
type LogResponse struct {
	Timestamp time.Time
	Message   string
}

func (e LogEntry) ToResponse() LogResponse {
	return LogResponse{
		Timestamp: e.Timestamp,
		Message:   e.Message,
	}
}

type ServiceStats struct {
	Service   string
	TotalLogs int
	Oldest    time.Time
	Newest    time.Time
}
