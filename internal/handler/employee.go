package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

// EmployeeHandler serves /v1/employees.
type EmployeeHandler struct {
	Employees *service.EmployeeService
	Logger    *slog.Logger
}

// List handles GET /v1/employees.
func (h *EmployeeHandler) List(c echo.Context) error {
	list, err := h.Employees.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /v1/employees/:id.
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	e, err := h.Employees.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Create handles POST /v1/employees.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var body model.EmployeeDraft
	if err := c.Bind(&body); err != nil {
		return respondError(c, h.Logger, bindError(err))
	}
	e, err := h.Employees.Create(c.Request().Context(), body)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// Update handles PUT and PATCH /v1/employees/:id.  Only the keys present in
// the body change; "availability": null clears it.
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	var patch model.EmployeePatch
	if err := c.Bind(&patch); err != nil {
		return respondError(c, h.Logger, bindError(err))
	}
	e, err := h.Employees.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/employees/:id.  The employee's shifts are
// removed with it.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	removal, err := h.Employees.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, removal)
}
