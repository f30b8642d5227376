// Package handler exposes the scheduling services over HTTP with echo.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/middleware"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

// Error codes returned in the "error" field.
const (
	CodeNotFound      = "not_found"
	CodeValidation    = "validation_error"
	CodeTimeOrdering  = "time_ordering"
	CodeShiftConflict = "shift_conflict"
	CodeInvalidPeriod = "invalid_period"
	CodeInternal      = "internal_error"
)

// respondError maps a service error onto a status code and JSON body.
// Missing records are logged at warn, rejected input at info and anything
// unexpected at error with its stack.
func respondError(c echo.Context, logger *slog.Logger, err error) error {
	ctx := c.Request().Context()
	reqID := slog.String("request_id", middleware.RequestID(c))

	var conflict *service.ConflictError
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, service.ErrShiftNotFound):
		logger.WarnContext(ctx, "resource not found", reqID, slog.String("path", c.Request().URL.Path), slog.Any("error", err))
		return c.JSON(http.StatusNotFound, map[string]any{"error": CodeNotFound, "message": err.Error()})

	case errors.As(err, &conflict):
		logger.InfoContext(ctx, "shift conflict", reqID, slog.Uint64("employee_id", conflict.EmployeeID), slog.Int("overlaps", len(conflict.Overlaps)))
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":    CodeShiftConflict,
			"message":  service.ErrShiftConflict.Error(),
			"overlaps": conflict.Overlaps,
		})

	case errors.Is(err, service.ErrTimeOrdering):
		logger.InfoContext(ctx, "rejected shift times", reqID)
		return c.JSON(http.StatusBadRequest, map[string]any{"error": CodeTimeOrdering, "message": err.Error()})

	case errors.Is(err, service.ErrInvalidPeriod):
		logger.InfoContext(ctx, "rejected analytics period", reqID, slog.Any("error", err))
		return c.JSON(http.StatusBadRequest, map[string]any{"error": CodeInvalidPeriod, "message": err.Error()})

	case errors.Is(err, service.ErrValidation):
		logger.InfoContext(ctx, "rejected input", reqID, slog.Any("error", err))
		return c.JSON(http.StatusBadRequest, map[string]any{"error": CodeValidation, "message": err.Error()})
	}

	logger.ErrorContext(ctx, "unhandled error", reqID,
		slog.String("method", c.Request().Method), slog.String("path", c.Request().URL.Path),
		slog.Any("error", errors.WithStack(err)))
	return c.JSON(http.StatusInternalServerError, map[string]any{"error": CodeInternal, "message": "internal server error"})
}

// bindError reports a request body that could not be decoded.
func bindError(err error) error {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return &service.ValidationError{Field: "body", Message: msg}
}
