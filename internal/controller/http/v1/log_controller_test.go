package httpv1_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpv1 "github.com/Egor213/LogVault/internal/controller/http/v1"
	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/metrics"
	service_mock "github.com/Egor213/LogVault/internal/mocks/service"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
	"github.com/Egor213/LogVault/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(ls service.Log) *echo.Echo {
	e := echo.New()
	httpv1.ConfigureRouter(e, &service.Services{Log: ls}, metrics.NewTestCounters())
	return e
}

func strPtr(s string) *string { return &s }

func TestLogController_SendLog(t *testing.T) {
	type mockBehavior func(s *service_mock.MockLog)

	ts := time.Date(2025, 3, 17, 10, 15, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			body: `{"service_name":"test-service","timestamp":"2025-03-17T10:15:00Z","message":"Test log message"}`,
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().
					SendLog(gomock.Any(), domain.SendLogInput{
						Service:   "test-service",
						Timestamp: ts,
						Message:   strPtr("Test log message"),
					}).
					Return(domain.LogEntry{ID: "id", Service: "test-service", Timestamp: ts, Message: "Test log message"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   "Log ingested successfully",
		},
		{
			name: "missing timestamp is passed as zero",
			body: `{"service_name":"test-service","message":"Test log message"}`,
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().
					SendLog(gomock.Any(), domain.SendLogInput{
						Service: "test-service",
						Message: strPtr("Test log message"),
					}).
					Return(domain.LogEntry{ID: "id", Service: "test-service", Message: "Test log message"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   "Log ingested successfully",
		},
		{
			name: "validation error",
			body: `{"timestamp":"2025-03-17T10:15:00Z","message":"Test log message"}`,
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().SendLog(gomock.Any(), gomock.Any()).Return(domain.LogEntry{}, service.ErrEmptyService)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "service name cannot be empty",
		},
		{
			name:         "malformed timestamp",
			body:         `{"service_name":"test-service","timestamp":"yesterday","message":"m"}`,
			mockBehavior: func(s *service_mock.MockLog) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     "Invalid request body",
		},
		{
			name:         "malformed json",
			body:         `{"service_name":`,
			mockBehavior: func(s *service_mock.MockLog) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     "Invalid request body",
		},
		{
			name: "unexpected error",
			body: `{"service_name":"test-service","message":"m"}`,
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().SendLog(gomock.Any(), gomock.Any()).Return(domain.LogEntry{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error processing log",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := service_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockService)

			req := httptest.NewRequest(http.MethodPost, "/logs", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			newRouter(mockService).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestLogController_GetLogs(t *testing.T) {
	type mockBehavior func(s *service_mock.MockLog)

	start := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 17, 10, 30, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		wantStatus   int
		wantBody     string
	}{
		{
			name:  "success",
			query: "service=auth-service&start=2025-03-17T10:00:00Z&end=2025-03-17T10:30:00Z",
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().
					GetLogs(gomock.Any(), repotypes.LogFilter{Service: "auth-service", From: start, To: end}).
					Return([]domain.LogResponse{
						{Timestamp: start.Add(5 * time.Minute), Message: "User attempted login"},
						{Timestamp: start.Add(15 * time.Minute), Message: "User login successful"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: `[{"timestamp":"2025-03-17T10:05:00Z","message":"User attempted login"},` +
				`{"timestamp":"2025-03-17T10:15:00Z","message":"User login successful"}]`,
		},
		{
			name:  "empty result",
			query: "service=unknown-service&start=2025-03-17T10:00:00Z&end=2025-03-17T10:30:00Z",
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().GetLogs(gomock.Any(), gomock.Any()).Return([]domain.LogResponse{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:         "invalid date format",
			query:        "service=test-service&start=invalid-date&end=2025-03-17T10:30:00Z",
			mockBehavior: func(s *service_mock.MockLog) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     "Invalid date format",
		},
		{
			name:  "missing bound",
			query: "service=test-service&end=2025-03-17T10:30:00Z",
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().
					GetLogs(gomock.Any(), repotypes.LogFilter{Service: "test-service", To: end}).
					Return(nil, service.ErrMissingStart)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "start time cannot be null",
		},
		{
			name:  "start after end",
			query: "service=test-service&start=2025-03-17T10:30:00Z&end=2025-03-17T10:00:00Z",
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().GetLogs(gomock.Any(), gomock.Any()).Return(nil, service.ErrStartAfterEnd)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "start time cannot be after end time",
		},
		{
			name:  "unexpected error",
			query: "service=test-service&start=2025-03-17T10:00:00Z&end=2025-03-17T10:30:00Z",
			mockBehavior: func(s *service_mock.MockLog) {
				s.EXPECT().GetLogs(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error querying logs",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := service_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockService)

			req := httptest.NewRequest(http.MethodGet, "/logs?"+tc.query, nil)
			rec := httptest.NewRecorder()

			newRouter(mockService).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
				return
			}
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestLogController_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	oldest := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	newest := oldest.Add(time.Minute)

	mockService := service_mock.NewMockLog(ctrl)
	mockService.EXPECT().GetStats(gomock.Any(), "auth").Return(domain.ServiceStats{
		Service:   "auth",
		TotalLogs: 2,
		Oldest:    oldest,
		Newest:    newest,
	}, nil)
	mockService.EXPECT().GetStats(gomock.Any(), "ghost").Return(domain.ServiceStats{Service: "ghost"}, nil)
	mockService.EXPECT().GetStats(gomock.Any(), "").Return(domain.ServiceStats{}, service.ErrEmptyService)

	router := newRouter(mockService)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs/stats?service=auth", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"service":"auth","total_logs":2,"oldest":"2025-03-17T10:00:00Z","newest":"2025-03-17T10:01:00Z"}`,
		rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs/stats?service=ghost", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"service":"ghost","total_logs":0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs/stats", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	newRouter(service_mock.NewMockLog(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
