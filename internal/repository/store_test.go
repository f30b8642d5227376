package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shift-scheduler/internal/config"
	"github.com/iliyamo/shift-scheduler/internal/database"
	"github.com/iliyamo/shift-scheduler/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, config.DB{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, dialect))
	return NewStore(db, dialect)
}

func seedEmployee(t *testing.T, s *Store, name string) uint64 {
	t.Helper()
	e := &model.Employee{Name: name, Role: "Operator"}
	require.NoError(t, s.Session(context.Background(), false, func(sess *Session) error {
		return sess.Employees.Create(context.Background(), e)
	}))
	return e.ID
}

func seedShift(t *testing.T, s *Store, employeeID uint64, day, startHour, endHour int) model.Shift {
	t.Helper()
	sh := model.Shift{
		EmployeeID: employeeID,
		ShiftDate:  model.NewDate(2025, 5, day),
		ShiftType:  model.ShiftMorning,
		StartTime:  model.NewDateTime(2025, 5, day, startHour, 0, 0),
		EndTime:    model.NewDateTime(2025, 5, day, endHour, 0, 0),
	}
	require.NoError(t, s.Session(context.Background(), false, func(sess *Session) error {
		return sess.Shifts.Create(context.Background(), &sh)
	}))
	return sh
}

func TestSessionRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Session(ctx, false, func(sess *Session) error {
		if err := sess.Employees.Create(ctx, &model.Employee{Name: "Ann", Role: "Cook"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.Session(ctx, true, func(sess *Session) error {
		list, err := sess.Employees.List(ctx)
		require.NoError(t, err)
		require.Empty(t, list)
		return nil
	}))
}

func TestSessionRollsBackOnPanic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.Panics(t, func() {
		_ = s.Session(ctx, false, func(sess *Session) error {
			_ = sess.Employees.Create(ctx, &model.Employee{Name: "Ann", Role: "Cook"})
			panic("boom")
		})
	})

	// The connection must be usable again and the insert gone.
	require.NoError(t, s.Session(ctx, true, func(sess *Session) error {
		list, err := sess.Employees.List(ctx)
		require.NoError(t, err)
		require.Empty(t, list)
		return nil
	}))
}

func TestEmployeeCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	avail := "Mon-Fri"

	e := &model.Employee{Name: "Ann", Role: "Cook", Availability: &avail}
	require.NoError(t, s.Session(ctx, false, func(sess *Session) error {
		return sess.Employees.Create(ctx, e)
	}))
	require.NotZero(t, e.ID)

	require.NoError(t, s.Session(ctx, false, func(sess *Session) error {
		got, err := sess.Employees.GetByID(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, "Ann", got.Name)
		require.Equal(t, "Mon-Fri", *got.Availability)

		got.Availability = nil
		got.Role = "Chef"
		require.NoError(t, sess.Employees.Update(ctx, got))

		again, err := sess.Employees.GetByID(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, "Chef", again.Role)
		require.Nil(t, again.Availability)

		require.NoError(t, sess.Employees.Delete(ctx, e.ID))
		_, err = sess.Employees.GetByID(ctx, e.ID)
		require.ErrorIs(t, err, ErrEmployeeNotFound)
		require.ErrorIs(t, sess.Employees.Delete(ctx, e.ID), ErrEmployeeNotFound)
		require.ErrorIs(t, sess.Employees.Lock(ctx, e.ID), ErrEmployeeNotFound)
		return nil
	}))
}

func TestEmployeeDeleteCascadesShifts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ann := seedEmployee(t, s, "Ann")
	bob := seedEmployee(t, s, "Bob")
	a1 := seedShift(t, s, ann, 21, 9, 17)
	a2 := seedShift(t, s, ann, 22, 9, 17)
	b1 := seedShift(t, s, bob, 21, 9, 17)

	require.NoError(t, s.Session(ctx, false, func(sess *Session) error {
		return sess.Employees.Delete(ctx, ann)
	}))

	require.NoError(t, s.Session(ctx, true, func(sess *Session) error {
		for _, id := range []uint64{a1.ID, a2.ID} {
			_, err := sess.Shifts.GetByID(ctx, id)
			require.ErrorIs(t, err, ErrShiftNotFound)
		}
		_, err := sess.Shifts.GetByID(ctx, b1.ID)
		require.NoError(t, err)
		return nil
	}))
}
