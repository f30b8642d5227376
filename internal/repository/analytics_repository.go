package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/database"
	"github.com/iliyamo/shift-scheduler/internal/model"
)

// AnalyticsRepo runs the aggregation queries over shifts.
type AnalyticsRepo struct {
	q       DBTX
	dialect database.Dialect
}

// durationSeconds returns the per-row shift length expression.
func (r *AnalyticsRepo) durationSeconds() string {
	if r.dialect == database.MySQL {
		return `TIMESTAMPDIFF(SECOND, s.start_time, s.end_time)`
	}
	return `(strftime('%s', s.end_time) - strftime('%s', s.start_time))`
}

// totalHours sums durationSeconds into hours.  The divisor is a float
// literal: MySQL would otherwise compute a DECIMAL rounded to four places.
func (r *AnalyticsRepo) totalHours() string {
	return `COALESCE(SUM(` + r.durationSeconds() + `), 0) / 3600e0`
}

// ByEmployee groups shifts by employee and returns shift counts and summed
// hours.  When from/to are set only shifts whose shift_date falls inside
// the inclusive window are counted.  Employees without a matching shift do
// not appear.  Period and window fields of the result are left for the
// caller to fill.
func (r *AnalyticsRepo) ByEmployee(ctx context.Context, from, to *model.Date) ([]model.EmployeeAnalytics, error) {
	q := `SELECT s.employee_id, e.name, COUNT(s.id), ` + r.totalHours() + `
	      FROM shifts s
	      JOIN employees e ON e.id = s.employee_id`
	args := []any{}
	if from != nil && to != nil {
		q += ` WHERE s.shift_date >= ? AND s.shift_date <= ?`
		args = append(args, *from, *to)
	}
	q += ` GROUP BY s.employee_id, e.name ORDER BY s.employee_id ASC`

	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	result := []model.EmployeeAnalytics{}
	for rows.Next() {
		var row model.EmployeeAnalytics
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.TotalShifts, &row.TotalHours); err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}
