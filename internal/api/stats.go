package api

import (
	"github.com/labstack/echo/v4"

	"shop-service/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard returns the aggregate counters --> GET /stats/dashboard
func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.statsService.Dashboard(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, stats)
}

// MonthlySales returns per (product, month) quantities --> GET /stats/monthly-sales
func (h *StatsHandler) MonthlySales(c echo.Context) error {
	sales, err := h.statsService.MonthlySales(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, sales)
}
