package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/shift-scheduler/internal/model"
)

func TestParseYearMonth(t *testing.T) {
	d, err := ParseYearMonth("2025-05")
	require.NoError(t, err)
	require.Equal(t, model.NewDate(2025, 5, 1), d)

	_, err = ParseYearMonth("May 2025")
	require.ErrorIs(t, err, ErrValidation)
}

func TestWriteMonth(t *testing.T) {
	f := newFixture(t)
	ada := f.employee(t, "Ada")
	bob := f.employee(t, "Bob")
	f.shift(t, ada, 1, 9, 12)
	f.shift(t, ada, 1, 13, 17)
	f.shift(t, bob, 31, 22, 23)

	// Outside the month.
	d := draft(ada, 1, 9, 12)
	june := model.NewDate(2025, 6, 1)
	start, end := model.NewDateTime(2025, 6, 1, 9, 0, 0), model.NewDateTime(2025, 6, 1, 12, 0, 0)
	d.ShiftDate, d.StartTime, d.EndTime = &june, &start, &end
	_, err := f.shifts.Create(context.Background(), d)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.export.WriteMonth(context.Background(), model.NewDate(2025, 5, 1), &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	cell := func(name string) string {
		v, err := book.GetCellValue(scheduleSheet, name)
		require.NoError(t, err)
		return v
	}
	require.Equal(t, "Shift schedule May 2025", cell("A1"))
	require.Equal(t, "Ada", cell("C3"))
	require.Equal(t, "Bob", cell("D3"))
	require.Equal(t, "2025-05-01", cell("A4"))
	require.Equal(t, "Thu", cell("B4"))
	require.Equal(t, "MORNING 09:00-12:00\nMORNING 13:00-17:00", cell("C4"))
	require.Equal(t, "MORNING 22:00-23:00", cell("D34"))
	require.Equal(t, "Total hours", cell("A35"))
	require.Equal(t, "7", cell("C35"))
	require.Equal(t, "1", cell("D35"))
}
