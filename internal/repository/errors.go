// Package repository defines the persistence layer for employees and shifts.
// Sentinel errors below let the service layer distinguish a missing row from
// a store failure.
package repository

import "errors"

// ErrEmployeeNotFound is returned when no employee row matches an id.
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrShiftNotFound is returned when no shift row matches an id.
var ErrShiftNotFound = errors.New("shift not found")
