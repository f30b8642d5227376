package model

import "strings"

// Employee is a person who can be booked on shifts.  Availability is a
// free-text description such as "Mon-Fri, 09:00-17:00".
type Employee struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Availability *string `json:"availability"`
}

// EmployeePatch is a partial employee update.
type EmployeePatch struct {
	Name         Optional[string] `json:"name"`
	Role         Optional[string] `json:"role"`
	Availability Optional[string] `json:"availability"`
}

// Validate rejects null or blank required fields.
func (p EmployeePatch) Validate() error {
	if p.Name.Null || (p.Name.Set && strings.TrimSpace(p.Name.Value) == "") {
		return &FieldError{Field: "name", Message: "must not be empty"}
	}
	if p.Role.Null || (p.Role.Set && strings.TrimSpace(p.Role.Value) == "") {
		return &FieldError{Field: "role", Message: "must not be empty"}
	}
	return nil
}

// Apply returns a copy of e with the present fields of p written over it.
func (p EmployeePatch) Apply(e Employee) Employee {
	e.Name = strings.TrimSpace(p.Name.Or(e.Name))
	e.Role = strings.TrimSpace(p.Role.Or(e.Role))
	e.Availability = p.Availability.Merge(e.Availability)
	return e
}

// EmployeeDraft is an employee proposed for creation.
type EmployeeDraft struct {
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Availability *string `json:"availability"`
}

// Validate requires a non-blank name and role.
func (d EmployeeDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &FieldError{Field: "name", Message: "must not be empty"}
	}
	if strings.TrimSpace(d.Role) == "" {
		return &FieldError{Field: "role", Message: "must not be empty"}
	}
	return nil
}
