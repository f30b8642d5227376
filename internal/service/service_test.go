package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shift-scheduler/internal/config"
	"github.com/iliyamo/shift-scheduler/internal/database"
	"github.com/iliyamo/shift-scheduler/internal/metrics"
	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/queue"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ShiftEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ShiftEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store     *repository.Store
	events    *recordingPublisher
	shifts    *ShiftService
	employees *EmployeeService
	analytics *AnalyticsService
	export    *ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, config.DB{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, dialect))

	store := repository.NewStore(db, dialect)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(nil)
	events := &recordingPublisher{}

	fixed := func() time.Time { return time.Date(2025, 5, 21, 12, 0, 0, 0, time.UTC) }
	shifts := NewShiftService(store, events, m, logger)
	shifts.now = fixed
	employees := NewEmployeeService(store, events, m, logger)
	employees.now = fixed
	analytics := NewAnalyticsService(store, m, logger)
	analytics.now = fixed

	return &fixture{
		store:     store,
		events:    events,
		shifts:    shifts,
		employees: employees,
		analytics: analytics,
		export:    NewExportService(store, logger),
	}
}

func (f *fixture) employee(t *testing.T, name string) uint64 {
	t.Helper()
	e, err := f.employees.Create(context.Background(), model.EmployeeDraft{Name: name, Role: "Cashier"})
	require.NoError(t, err)
	return e.ID
}

func draft(employeeID uint64, day, startHour, endHour int) model.ShiftDraft {
	date := model.NewDate(2025, 5, day)
	start := model.NewDateTime(2025, 5, day, startHour, 0, 0)
	end := model.NewDateTime(2025, 5, day, endHour, 0, 0)
	return model.ShiftDraft{
		EmployeeID: employeeID,
		ShiftDate:  &date,
		ShiftType:  model.ShiftMorning,
		StartTime:  &start,
		EndTime:    &end,
	}
}

func (f *fixture) shift(t *testing.T, employeeID uint64, day, startHour, endHour int) model.Shift {
	t.Helper()
	sh, err := f.shifts.Create(context.Background(), draft(employeeID, day, startHour, endHour))
	require.NoError(t, err)
	return *sh
}
