// Package queue defines the shift lifecycle events exchanged over the
// message broker, the publisher used by the services and the audit
// consumer.
package queue

import "github.com/iliyamo/shift-scheduler/internal/model"

// Event types.
const (
	ShiftCreated    = "shift.created"
	ShiftUpdated    = "shift.updated"
	ShiftDeleted    = "shift.deleted"
	EmployeeDeleted = "employee.deleted"
)

// ShiftEvent is published after a shift write commits.  It carries enough
// for downstream consumers to log or audit without querying the database.
type ShiftEvent struct {
	Type            string          `json:"type"`
	ShiftID         uint64          `json:"shift_id,omitempty"`
	EmployeeID      uint64          `json:"employee_id"`
	ShiftDate       string          `json:"shift_date,omitempty"`
	ShiftType       model.ShiftType `json:"shift,omitempty"`
	StartTime       string          `json:"start_time,omitempty"`
	EndTime         string          `json:"end_time,omitempty"`
	RemovedShiftIDs []uint64        `json:"removed_shift_ids,omitempty"`
	OccurredAt      string          `json:"occurred_at"`
}

// NewShiftEvent describes s for the given event type.
func NewShiftEvent(typ string, s model.Shift, occurredAt string) ShiftEvent {
	return ShiftEvent{
		Type:       typ,
		ShiftID:    s.ID,
		EmployeeID: s.EmployeeID,
		ShiftDate:  s.ShiftDate.String(),
		ShiftType:  s.ShiftType,
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		OccurredAt: occurredAt,
	}
}
