package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

// ShiftHandler serves /v1/shifts.
type ShiftHandler struct {
	Shifts *service.ShiftService
	Logger *slog.Logger
}

// List handles GET /v1/shifts.  Every filter is optional and inclusive.
func (h *ShiftHandler) List(c echo.Context) error {
	f, err := shiftFilter(c)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	shifts, err := h.Shifts.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, shifts)
}

// Get handles GET /v1/shifts/:id.
func (h *ShiftHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	sh, err := h.Shifts.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, sh)
}

// Create handles POST /v1/shifts.  An overlap with another shift of the
// same employee on the same date is answered with 400 and the overlapping
// shifts.
func (h *ShiftHandler) Create(c echo.Context) error {
	var body model.ShiftDraft
	if err := c.Bind(&body); err != nil {
		return respondError(c, h.Logger, bindError(err))
	}
	sh, err := h.Shifts.Create(c.Request().Context(), body)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusCreated, sh)
}

// Update handles PUT and PATCH /v1/shifts/:id.
func (h *ShiftHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	var patch model.ShiftPatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, h.Logger, bindError(err))
	}
	sh, err := h.Shifts.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, sh)
}

// Delete handles DELETE /v1/shifts/:id.
func (h *ShiftHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	removal, err := h.Shifts.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, removal)
}
