package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	want := NewDateTime(2025, 5, 21, 9, 30, 0)
	for _, in := range []string{
		"2025-05-21T09:30:00",
		"2025-05-21 09:30:00",
		"2025-05-21T09:30",
		"2025-05-21T09:30:00+02:00",
		" 2025-05-21T09:30:00Z ",
	} {
		got, err := ParseDateTime(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseDateTime("21.05.2025 09:30")
	require.Error(t, err)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-05-21"))
	require.Equal(t, NewDate(2025, 5, 21), d)
	require.NoError(t, d.Scan(time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, NewDate(2025, 5, 21), d)
	require.Error(t, d.Scan(nil))

	var ts DateTime
	require.NoError(t, ts.Scan([]byte("2025-05-21 09:30:00")))
	require.Equal(t, NewDateTime(2025, 5, 21, 9, 30, 0), ts)
	v, err := ts.Value()
	require.NoError(t, err)
	require.Equal(t, "2025-05-21 09:30:00", v)
}

func TestShiftPatchTriState(t *testing.T) {
	var p ShiftPatch
	require.NoError(t, json.Unmarshal([]byte(`{"note":null,"shift":"evening","end_time":"2025-05-21T18:00:00"}`), &p))
	require.NoError(t, p.Validate())
	require.False(t, p.StartTime.Set)
	require.True(t, p.Note.Null)

	note := "keep me"
	cur := Shift{
		ID:         1,
		EmployeeID: 2,
		ShiftDate:  NewDate(2025, 5, 21),
		ShiftType:  ShiftMorning,
		Note:       &note,
		StartTime:  NewDateTime(2025, 5, 21, 9, 0, 0),
		EndTime:    NewDateTime(2025, 5, 21, 17, 0, 0),
	}
	got := p.Apply(cur)
	require.Nil(t, got.Note)
	require.Equal(t, ShiftEvening, got.ShiftType)
	require.Equal(t, cur.StartTime, got.StartTime)
	require.Equal(t, NewDateTime(2025, 5, 21, 18, 0, 0), got.EndTime)
	require.Equal(t, "keep me", *cur.Note)

	var bad ShiftPatch
	require.NoError(t, json.Unmarshal([]byte(`{"shift_date":null,"start_time":null}`), &bad))
	var fe *FieldError
	require.ErrorAs(t, bad.Validate(), &fe)
	require.Equal(t, "shift_date", fe.Field)

	require.Error(t, json.Unmarshal([]byte(`{"shift":"brunch"}`), &bad))
}

func TestEmployeePatch(t *testing.T) {
	avail := "weekends"
	e := Employee{ID: 1, Name: "Ada", Role: "Cook", Availability: &avail}

	var p EmployeePatch
	require.NoError(t, json.Unmarshal([]byte(`{"role":" Chef "}`), &p))
	require.NoError(t, p.Validate())
	got := p.Apply(e)
	require.Equal(t, "Chef", got.Role)
	require.Equal(t, "weekends", *got.Availability)

	require.NoError(t, json.Unmarshal([]byte(`{"availability":null}`), &p))
	require.Nil(t, p.Apply(e).Availability)

	require.Error(t, EmployeePatch{Role: Null[string]()}.Validate())
	require.Error(t, EmployeePatch{Name: Some("  ")}.Validate())
}

func TestShiftOverlaps(t *testing.T) {
	at := func(h int) DateTime { return NewDateTime(2025, 5, 21, h, 0, 0) }
	a := Shift{StartTime: at(9), EndTime: at(17)}

	require.True(t, a.Overlaps(Shift{StartTime: at(16), EndTime: at(18)}))
	require.True(t, a.Overlaps(Shift{StartTime: at(10), EndTime: at(11)}))
	require.False(t, a.Overlaps(Shift{StartTime: at(17), EndTime: at(18)}))
	require.False(t, a.Overlaps(Shift{StartTime: at(7), EndTime: at(9)}))
	require.Equal(t, 8.0, a.Hours())
}
