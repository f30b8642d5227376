package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shift-scheduler/internal/service"
)

// AnalyticsHandler serves /v1/analytics.
type AnalyticsHandler struct {
	Analytics *service.AnalyticsService
	Logger    *slog.Logger
}

// Aggregate handles GET /v1/analytics?period=&ref_date=.
func (h *AnalyticsHandler) Aggregate(c echo.Context) error {
	ref, err := queryDate(c, "ref_date")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	rows, err := h.Analytics.Aggregate(c.Request().Context(), c.QueryParam("period"), ref)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// AggregateByEmployee handles GET /v1/analytics/:employee_id.
func (h *AnalyticsHandler) AggregateByEmployee(c echo.Context) error {
	id, err := pathID(c, "employee_id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	ref, err := queryDate(c, "ref_date")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	rows, err := h.Analytics.AggregateByEmployee(c.Request().Context(), id, c.QueryParam("period"), ref)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, rows)
}
