package httpv1

import (
	"net/http"

	"github.com/Egor213/LogVault/internal/metrics"
	"github.com/Egor213/LogVault/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters) {
	handler.HideBanner = true
	handler.HidePort = true
	handler.Use(middleware.Recover())

	handler.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	lc := NewLogController(services.Log, counters)

	logs := handler.Group("/logs")
	logs.POST("", lc.SendLog)
	logs.GET("", lc.GetLogs)
	logs.GET("/stats", lc.GetStats)
}
