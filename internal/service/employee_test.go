package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/queue"
)

func TestEmployeeLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	avail := "Mon-Fri"

	e, err := f.employees.Create(ctx, model.EmployeeDraft{Name: "  Ada ", Role: "Cashier", Availability: &avail})
	require.NoError(t, err)
	require.Equal(t, "Ada", e.Name)

	updated, err := f.employees.Update(ctx, e.ID, model.EmployeePatch{Role: model.Some("Manager")})
	require.NoError(t, err)
	require.Equal(t, "Ada", updated.Name)
	require.Equal(t, "Manager", updated.Role)
	require.Equal(t, "Mon-Fri", *updated.Availability)

	updated, err = f.employees.Update(ctx, e.ID, model.EmployeePatch{Availability: model.Null[string]()})
	require.NoError(t, err)
	require.Nil(t, updated.Availability)

	list, err := f.employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, *updated, list[0])
}

func TestEmployeeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.employees.Create(ctx, model.EmployeeDraft{Name: " ", Role: "Cashier"})
	require.ErrorIs(t, err, ErrValidation)

	id := f.employee(t, "Ada")
	_, err = f.employees.Update(ctx, id, model.EmployeePatch{Name: model.Null[string]()})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.employees.Update(ctx, 999, model.EmployeePatch{Name: model.Some("Bob")})
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = f.employees.Get(ctx, 999)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeDeleteRemovesShifts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.employee(t, "Ada")
	bob := f.employee(t, "Bob")
	a1 := f.shift(t, ada, 21, 9, 17)
	a2 := f.shift(t, ada, 22, 9, 17)
	b1 := f.shift(t, bob, 21, 9, 17)

	removal, err := f.employees.Delete(ctx, ada)
	require.NoError(t, err)
	require.Equal(t, ada, removal.ID)

	_, err = f.employees.Get(ctx, ada)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
	for _, id := range []uint64{a1.ID, a2.ID} {
		_, err = f.shifts.Get(ctx, id)
		require.ErrorIs(t, err, ErrShiftNotFound)
	}
	_, err = f.shifts.Get(ctx, b1.ID)
	require.NoError(t, err)

	last := f.events.events[len(f.events.events)-1]
	require.Equal(t, queue.EmployeeDeleted, last.Type)
	require.Equal(t, []uint64{a1.ID, a2.ID}, last.RemovedShiftIDs)

	_, err = f.employees.Delete(ctx, ada)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}
