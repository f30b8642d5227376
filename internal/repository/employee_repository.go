package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/database"
	"github.com/iliyamo/shift-scheduler/internal/model"
)

// EmployeeRepo manages persistence for employees.
type EmployeeRepo struct {
	q       DBTX
	dialect database.Dialect
}

const employeeColumns = `id, name, role, availability`

func scanEmployee(row interface{ Scan(...any) error }) (model.Employee, error) {
	var (
		e     model.Employee
		avail sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Role, &avail); err != nil {
		return e, err
	}
	if avail.Valid {
		e.Availability = &avail.String
	}
	return e, nil
}

// Create inserts e and assigns the generated id back to it.
func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	const q = `INSERT INTO employees (name, role, availability) VALUES (?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, e.Name, e.Role, e.Availability)
	if err != nil {
		return errors.WithStack(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.WithStack(err)
	}
	e.ID = uint64(id)
	return nil
}

// GetByID returns ErrEmployeeNotFound when there is no matching row.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (*model.Employee, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	e, err := scanEmployee(r.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, errors.WithStack(err)
	}
	return &e, nil
}

// List returns every employee ordered by id.  There is no pagination.
func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employees ORDER BY id ASC`
	rows, err := r.q.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()
	result := []model.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

// Update writes every column of e.  The caller loads the row first, so a
// missing employee is reported before this runs.
func (r *EmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	const q = `UPDATE employees SET name = ?, role = ?, availability = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q, e.Name, e.Role, e.Availability, e.ID); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Delete removes the employee.  Its shifts go with it through the
// ON DELETE CASCADE foreign key, inside the same statement.
func (r *EmployeeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// Lock confirms the employee exists and serializes shift writers for it
// until the surrounding transaction ends.  MySQL takes a row lock; SQLite
// transactions already hold the database write lock from BEGIN IMMEDIATE.
func (r *EmployeeRepo) Lock(ctx context.Context, id uint64) error {
	q := `SELECT id FROM employees WHERE id = ?`
	if r.dialect == database.MySQL {
		q += ` FOR UPDATE`
	}
	var got uint64
	if err := r.q.QueryRowContext(ctx, q, id).Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		return errors.WithStack(err)
	}
	return nil
}
