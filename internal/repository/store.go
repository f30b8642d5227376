package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/database"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the database handle.  Repositories are never used against the
// bare handle: every unit of work runs in a Session.
type Store struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewStore wraps db.  dialect selects the SQL variants used for row locking
// and duration arithmetic.
func NewStore(db *sql.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle for migrations and health checks.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect reports the SQL flavour of the store.
func (s *Store) Dialect() database.Dialect { return s.dialect }

// Session is one transaction plus the repositories bound to it.
type Session struct {
	Employees *EmployeeRepo
	Shifts    *ShiftRepo
	Analytics *AnalyticsRepo
}

func newSession(q DBTX, dialect database.Dialect) *Session {
	return &Session{
		Employees: &EmployeeRepo{q: q, dialect: dialect},
		Shifts:    &ShiftRepo{q: q, dialect: dialect},
		Analytics: &AnalyticsRepo{q: q, dialect: dialect},
	}
}

// Session runs fn inside a transaction.  The transaction is committed when
// fn returns nil and rolled back on error or panic, so it is released on
// every exit path.
func (s *Store) Session(ctx context.Context, readOnly bool, fn func(*Session) error) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly && s.dialect == database.MySQL})
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = errors.Wrap(cErr, "could not commit transaction")
		}
	}()

	return fn(newSession(tx, s.dialect))
}
