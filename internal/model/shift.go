package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShiftType is the enumerated part of the day a shift covers.
type ShiftType string

const (
	ShiftMorning   ShiftType = "MORNING"
	ShiftAfternoon ShiftType = "AFTERNOON"
	ShiftEvening   ShiftType = "EVENING"
	ShiftNight     ShiftType = "NIGHT"
)

// ShiftTypes lists every accepted variant in display order.
var ShiftTypes = []ShiftType{ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftNight}

// ParseShiftType normalizes s and checks it against the variant set.
func ParseShiftType(s string) (ShiftType, error) {
	t := ShiftType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid shift type %q: use MORNING, AFTERNOON, EVENING or NIGHT", s)
	}
	return t, nil
}

func (t ShiftType) Valid() bool {
	switch t {
	case ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftNight:
		return true
	}
	return false
}

// UnmarshalJSON accepts any casing of a known variant.
func (t *ShiftType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("shift type must be a string")
	}
	v, err := ParseShiftType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Shift is a scheduled work interval for one employee on one calendar date.
// StartTime/EndTime form the half-open interval [StartTime, EndTime).
//
// Fields:
//
//	ID         – shifts.id, assigned by the store.
//	EmployeeID – owning employee; the row is removed with its employee.
//	ShiftDate  – calendar date the shift is booked on.
//	ShiftType  – MORNING, AFTERNOON, EVENING or NIGHT.
//	Note       – optional free text.
//	StartTime  – naive start timestamp.
//	EndTime    – naive end timestamp, strictly after StartTime.
type Shift struct {
	ID         uint64    `json:"id"`
	EmployeeID uint64    `json:"employee_id"`
	ShiftDate  Date      `json:"shift_date"`
	ShiftType  ShiftType `json:"shift"`
	Note       *string   `json:"note"`
	StartTime  DateTime  `json:"start_time"`
	EndTime    DateTime  `json:"end_time"`
}

// Hours returns the shift duration in hours.
func (s Shift) Hours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}

// Overlaps reports whether s and o intersect as half-open intervals.
// Touching endpoints do not overlap.
func (s Shift) Overlaps(o Shift) bool {
	return s.StartTime.Before(o.EndTime) && o.StartTime.Before(s.EndTime)
}

// ShiftPatch is a partial shift update.  Absent fields leave the stored
// value untouched.
type ShiftPatch struct {
	EmployeeID Optional[uint64]    `json:"employee_id"`
	ShiftDate  Optional[Date]      `json:"shift_date"`
	ShiftType  Optional[ShiftType] `json:"shift"`
	Note       Optional[string]    `json:"note"`
	StartTime  Optional[DateTime]  `json:"start_time"`
	EndTime    Optional[DateTime]  `json:"end_time"`
}

// Validate rejects explicit nulls on required fields.
func (p ShiftPatch) Validate() error {
	required := []struct {
		name string
		null bool
	}{
		{"employee_id", p.EmployeeID.Null},
		{"shift_date", p.ShiftDate.Null},
		{"shift", p.ShiftType.Null},
		{"start_time", p.StartTime.Null},
		{"end_time", p.EndTime.Null},
	}
	for _, f := range required {
		if f.null {
			return &FieldError{Field: f.name, Message: "cannot be null"}
		}
	}
	return nil
}

// Apply returns a copy of s with every present field of p written over it.
func (p ShiftPatch) Apply(s Shift) Shift {
	s.EmployeeID = p.EmployeeID.Or(s.EmployeeID)
	s.ShiftDate = p.ShiftDate.Or(s.ShiftDate)
	s.ShiftType = p.ShiftType.Or(s.ShiftType)
	s.Note = p.Note.Merge(s.Note)
	s.StartTime = p.StartTime.Or(s.StartTime)
	s.EndTime = p.EndTime.Or(s.EndTime)
	return s
}

// Removal confirms a delete.
type Removal struct {
	ID      uint64 `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ShiftDraft is a shift proposed for creation.  Times are pointers so a
// missing value can be told apart from the zero timestamp.
type ShiftDraft struct {
	EmployeeID uint64    `json:"employee_id"`
	ShiftDate  *Date     `json:"shift_date"`
	ShiftType  ShiftType `json:"shift"`
	Note       *string   `json:"note"`
	StartTime  *DateTime `json:"start_time"`
	EndTime    *DateTime `json:"end_time"`
}
