package httpv1

import (
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogVault/internal/controller/common/logging"
	"github.com/Egor213/LogVault/internal/metrics"
	"github.com/Egor213/LogVault/internal/service"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	msgIngested          = "Log ingested successfully"
	msgInvalidBody       = "Invalid request body"
	msgInvalidDateFormat = "Invalid date format. Please use ISO 8601 format (e.g. 2025-03-17T10:15:00Z)"
	msgIngestFailed      = "Error processing log"
	msgQueryFailed       = "Error querying logs"
	msgStatsFailed       = "Error querying stats"
)

type LogController struct {
	logService service.Log
	counters   *metrics.Counters
}

func NewLogController(ls service.Log, cnt *metrics.Counters) *LogController {
	return &LogController{
		logService: ls,
		counters:   cnt,
	}
}

// SendLog handles POST /logs.
func (c *LogController) SendLog(ctx echo.Context) error {
	c.counters.HTTPRequests.Inc("SendLog", "received")

	var req SendLogRequest
	if err := ctx.Bind(&req); err != nil {
		c.counters.HTTPRequests.Inc("SendLog", "failed")
		log.WithError(err).Error("Error ingesting log: cannot decode body")
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	in := NewSendLogInputFromRequest(req)
	logginghelper.LogReceived(in)

	entry, err := c.logService.SendLog(ctx.Request().Context(), in)
	if err != nil {
		c.counters.HTTPRequests.Inc("SendLog", "failed")
		logginghelper.LogError(in, err)
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msgIngestFailed)
	}

	logginghelper.LogSaved(entry)
	c.counters.HTTPRequests.Inc("SendLog", "ok")

	return ctx.String(http.StatusCreated, msgIngested)
}

// GetLogs handles GET /logs?service=&start=&end=.
func (c *LogController) GetLogs(ctx echo.Context) error {
	c.counters.HTTPRequests.Inc("GetLogs", "received")

	from, err := parseInstant(ctx.QueryParam("start"))
	if err != nil {
		return c.invalidDate(err)
	}
	to, err := parseInstant(ctx.QueryParam("end"))
	if err != nil {
		return c.invalidDate(err)
	}

	lf := NewLogFilter(ctx.QueryParam("service"), from, to)

	logs, err := c.logService.GetLogs(ctx.Request().Context(), lf)
	if err != nil {
		c.counters.HTTPRequests.Inc("GetLogs", "failed")
		logginghelper.LogQueryError(lf, err)
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msgQueryFailed)
	}

	logginghelper.LogQuery(lf, len(logs))
	c.counters.HTTPRequests.Inc("GetLogs", "ok")

	return ctx.JSON(http.StatusOK, ToLogResponses(logs))
}

// GetStats handles GET /logs/stats?service=.
func (c *LogController) GetStats(ctx echo.Context) error {
	c.counters.HTTPRequests.Inc("GetStats", "received")

	stats, err := c.logService.GetStats(ctx.Request().Context(), ctx.QueryParam("service"))
	if err != nil {
		c.counters.HTTPRequests.Inc("GetStats", "failed")
		log.WithError(err).Error("Error querying stats")
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msgStatsFailed)
	}

	c.counters.HTTPRequests.Inc("GetStats", "ok")
	return ctx.JSON(http.StatusOK, ToStatsResponse(stats))
}

func (c *LogController) invalidDate(err error) error {
	c.counters.HTTPRequests.Inc("GetLogs", "failed")
	log.WithError(err).Error("Invalid date format")
	return echo.NewHTTPError(http.StatusBadRequest, msgInvalidDateFormat)
}
