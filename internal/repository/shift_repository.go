package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/database"
	"github.com/iliyamo/shift-scheduler/internal/model"
)

// ShiftRepo manages persistence for shifts.
type ShiftRepo struct {
	q       DBTX
	dialect database.Dialect
}

// forUpdate is appended to reads that must see the latest committed rows
// and hold them until the transaction ends.  SQLite needs nothing: the
// session already owns the database write lock.
func (r *ShiftRepo) forUpdate() string {
	if r.dialect == database.MySQL {
		return ` FOR UPDATE`
	}
	return ""
}

// ShiftFilter narrows List.  A nil field imposes no constraint; all bounds
// are inclusive and filters combine with AND.
type ShiftFilter struct {
	StartDate  *model.Date     // shift_date >= StartDate
	EndDate    *model.Date     // shift_date <= EndDate
	EmployeeID *uint64         // employee_id = EmployeeID
	StartFrom  *model.DateTime // start_time >= StartFrom
	StartTo    *model.DateTime // start_time <= StartTo
	EndFrom    *model.DateTime // end_time >= EndFrom
	EndTo      *model.DateTime // end_time <= EndTo
}

const shiftColumns = `id, employee_id, shift_date, shift, note, start_time, end_time`

func scanShift(row interface{ Scan(...any) error }) (model.Shift, error) {
	var (
		s    model.Shift
		note sql.NullString
	)
	if err := row.Scan(&s.ID, &s.EmployeeID, &s.ShiftDate, &s.ShiftType, &note, &s.StartTime, &s.EndTime); err != nil {
		return s, err
	}
	if note.Valid {
		s.Note = &note.String
	}
	return s, nil
}

func (r *ShiftRepo) query(ctx context.Context, q string, args ...any) ([]model.Shift, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()
	result := []model.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

// Create inserts s and assigns the generated id back to it.
func (r *ShiftRepo) Create(ctx context.Context, s *model.Shift) error {
	const q = `INSERT INTO shifts (employee_id, shift_date, shift, note, start_time, end_time) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, s.EmployeeID, s.ShiftDate, string(s.ShiftType), s.Note, s.StartTime, s.EndTime)
	if err != nil {
		return errors.WithStack(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.WithStack(err)
	}
	s.ID = uint64(id)
	return nil
}

// GetByID returns ErrShiftNotFound when there is no matching row.
func (r *ShiftRepo) GetByID(ctx context.Context, id uint64) (*model.Shift, error) {
	return r.get(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id)
}

// GetForUpdate is GetByID as a locking read.  Writers call it first so the
// row, and on MySQL the transaction's view, are taken only once the lock is
// held.
func (r *ShiftRepo) GetForUpdate(ctx context.Context, id uint64) (*model.Shift, error) {
	return r.get(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`+r.forUpdate(), id)
}

func (r *ShiftRepo) get(ctx context.Context, q string, id uint64) (*model.Shift, error) {
	s, err := scanShift(r.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, errors.WithStack(err)
	}
	return &s, nil
}

// List returns the shifts matching f ordered by shift_date ascending.  Ties
// are broken by id so the order is stable.
func (r *ShiftRepo) List(ctx context.Context, f ShiftFilter) ([]model.Shift, error) {
	where := []string{}
	args := []any{}

	if f.StartDate != nil {
		where = append(where, "shift_date >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		where = append(where, "shift_date <= ?")
		args = append(args, *f.EndDate)
	}
	if f.EmployeeID != nil {
		where = append(where, "employee_id = ?")
		args = append(args, *f.EmployeeID)
	}
	if f.StartFrom != nil {
		where = append(where, "start_time >= ?")
		args = append(args, *f.StartFrom)
	}
	if f.StartTo != nil {
		where = append(where, "start_time <= ?")
		args = append(args, *f.StartTo)
	}
	if f.EndFrom != nil {
		where = append(where, "end_time >= ?")
		args = append(args, *f.EndFrom)
	}
	if f.EndTo != nil {
		where = append(where, "end_time <= ?")
		args = append(args, *f.EndTo)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	q := `SELECT ` + shiftColumns + ` FROM shifts WHERE ` + cond + ` ORDER BY shift_date ASC, id ASC`
	return r.query(ctx, q, args...)
}

// FindOverlapping returns the shifts of employeeID on date whose interval
// intersects [start, end).  A shift overlaps when it starts before the
// proposed end and ends after the proposed start, so touching endpoints do
// not count.  excludeID, when set, drops that shift from the comparison.
// On MySQL this is a locking read, so rows committed by a writer that held
// the employee lock before us are always visible.
func (r *ShiftRepo) FindOverlapping(ctx context.Context, employeeID uint64, date model.Date, start, end model.DateTime, excludeID *uint64) ([]model.Shift, error) {
	q := `SELECT ` + shiftColumns + `
	      FROM shifts
	      WHERE employee_id = ? AND shift_date = ? AND start_time < ? AND end_time > ?`
	args := []any{employeeID, date, end, start}
	if excludeID != nil {
		q += ` AND id <> ?`
		args = append(args, *excludeID)
	}
	q += ` ORDER BY start_time ASC` + r.forUpdate()
	return r.query(ctx, q, args...)
}

// Update writes every column of s.
func (r *ShiftRepo) Update(ctx context.Context, s *model.Shift) error {
	const q = `UPDATE shifts
	           SET employee_id = ?, shift_date = ?, shift = ?, note = ?, start_time = ?, end_time = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q, s.EmployeeID, s.ShiftDate, string(s.ShiftType), s.Note, s.StartTime, s.EndTime, s.ID); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Delete removes a single shift.
func (r *ShiftRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShiftNotFound
	}
	return nil
}
