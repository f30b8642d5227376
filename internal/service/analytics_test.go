package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shift-scheduler/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestResolvePeriod(t *testing.T) {
	today := model.NewDate(2025, 5, 21)
	tests := []struct {
		name    string
		period  string
		ref     *model.Date
		want    Window
		wantErr bool
	}{
		{"all by default", "", nil, Window{Label: "all", Start: MinDate, End: MaxDate, All: true}, false},
		{"explicit all", "all", ptr(model.NewDate(2025, 1, 1)), Window{Label: "all", Start: MinDate, End: MaxDate, All: true}, false},
		{"day", "day", ptr(model.NewDate(2025, 3, 4)), Window{Label: "day", Start: model.NewDate(2025, 3, 4), End: model.NewDate(2025, 3, 4)}, false},
		{"day defaults to today", "day", nil, Window{Label: "day", Start: today, End: today}, false},
		{"week from wednesday", "week", ptr(model.NewDate(2025, 5, 21)), Window{Label: "week", Start: model.NewDate(2025, 5, 19), End: model.NewDate(2025, 5, 25)}, false},
		{"week from monday", "week", ptr(model.NewDate(2025, 5, 19)), Window{Label: "week", Start: model.NewDate(2025, 5, 19), End: model.NewDate(2025, 5, 25)}, false},
		{"week from sunday", "week", ptr(model.NewDate(2025, 5, 25)), Window{Label: "week", Start: model.NewDate(2025, 5, 19), End: model.NewDate(2025, 5, 25)}, false},
		{"week across year", "week", ptr(model.NewDate(2025, 1, 1)), Window{Label: "week", Start: model.NewDate(2024, 12, 30), End: model.NewDate(2025, 1, 5)}, false},
		{"month", "month", ptr(model.NewDate(2024, 2, 10)), Window{Label: "month", Start: model.NewDate(2024, 2, 1), End: model.NewDate(2024, 2, 29)}, false},
		{"december", "MONTH", ptr(model.NewDate(2025, 12, 31)), Window{Label: "month", Start: model.NewDate(2025, 12, 1), End: model.NewDate(2025, 12, 31)}, false},
		{"ref date without period", "", ptr(today), Window{}, true},
		{"unknown", "quarter", nil, Window{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(tt.period, tt.ref, today)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			if got.Label == PeriodWeek {
				require.Equal(t, time.Monday, got.Start.Weekday())
				require.Equal(t, time.Sunday, got.End.Weekday())
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.employee(t, "Ada")
	bob := f.employee(t, "Bob")
	f.employee(t, "Cy")

	f.shift(t, ada, 19, 9, 17)  // Monday
	f.shift(t, ada, 21, 8, 12)  // Wednesday
	f.shift(t, ada, 26, 9, 10)  // next Monday
	f.shift(t, bob, 25, 22, 23) // Sunday

	rows, err := f.analytics.Aggregate(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, ada, rows[0].EmployeeID)
	require.Equal(t, "Ada", rows[0].EmployeeName)
	require.EqualValues(t, 3, rows[0].TotalShifts)
	require.InDelta(t, 13.0, rows[0].TotalHours, 1e-9)
	require.Equal(t, "all", rows[0].Period)
	require.Equal(t, MinDate, rows[0].StartDate)
	require.Equal(t, MaxDate, rows[0].EndDate)
	require.Equal(t, bob, rows[1].EmployeeID)

	rows, err = f.analytics.Aggregate(ctx, "week", ptr(model.NewDate(2025, 5, 21)))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 2, rows[0].TotalShifts)
	require.InDelta(t, 12.0, rows[0].TotalHours, 1e-9)
	require.Equal(t, model.NewDate(2025, 5, 19), rows[0].StartDate)
	require.Equal(t, model.NewDate(2025, 5, 25), rows[0].EndDate)

	// The fixture clock is 2025-05-21.
	rows, err = f.analytics.Aggregate(ctx, "day", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 4.0, rows[0].TotalHours, 1e-9)

	rows, err = f.analytics.Aggregate(ctx, "day", ptr(model.NewDate(2025, 5, 20)))
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = f.analytics.AggregateByEmployee(ctx, bob, "month", ptr(model.NewDate(2025, 5, 1)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, bob, rows[0].EmployeeID)
	require.InDelta(t, 1.0, rows[0].TotalHours, 1e-9)

	_, err = f.analytics.Aggregate(ctx, "fortnight", nil)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}
