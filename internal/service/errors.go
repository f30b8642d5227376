// Package service holds the scheduling, employee, analytics and export use
// cases.  Each call runs in exactly one repository session.
package service

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/model"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrTimeOrdering     = errors.New("end_time must be after start_time")
	ErrShiftConflict    = errors.New("shift overlaps an existing shift")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrValidation       = errors.New("validation failed")
)

// ConflictError lists the shifts a proposed shift would overlap.
type ConflictError struct {
	EmployeeID uint64
	Overlaps   []model.Shift
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift overlaps %d existing shift(s) of employee %d", len(e.Overlaps), e.EmployeeID)
}

func (e *ConflictError) Unwrap() error { return ErrShiftConflict }

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PeriodError reports an analytics period that could not be resolved.
type PeriodError struct {
	Period string
	Reason string
}

func (e *PeriodError) Error() string {
	if e.Period == "" {
		return e.Reason
	}
	return fmt.Sprintf("period %q: %s", e.Period, e.Reason)
}

func (e *PeriodError) Unwrap() error { return ErrInvalidPeriod }

func invalid(err error) error {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return err
}
