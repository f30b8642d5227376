package model

// EmployeeAnalytics is one aggregated row per employee for a window.
type EmployeeAnalytics struct {
	EmployeeID   uint64  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalShifts  int64   `json:"total_shifts"`
	TotalHours   float64 `json:"total_hours"`
	Period       string  `json:"period"`
	StartDate    Date    `json:"start_date"`
	EndDate      Date    `json:"end_date"`
}
